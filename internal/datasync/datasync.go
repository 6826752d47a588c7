// Package datasync imports memos and their quizzes from YAML files into the database.
package datasync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/memoquiz/internal/memo"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
	"github.com/at-ishikawa/memoquiz/internal/user"
)

//go:generate mockgen -source=datasync.go -destination=../mocks/datasync/mock_datasync.go -package=mock_datasync

// File is the import document.
type File struct {
	Memos []MemoEntry `yaml:"memos"`
}

// MemoEntry identifies its owner by UserID or by the LINE account id in Account.
type MemoEntry struct {
	UserID    int64       `yaml:"user_id,omitempty"`
	Account   string      `yaml:"account,omitempty"`
	Name      string      `yaml:"name,omitempty"`
	Title     string      `yaml:"title"`
	Body      string      `yaml:"body"`
	SourceRef string      `yaml:"source_ref,omitempty"`
	Quizzes   []QuizEntry `yaml:"quizzes,omitempty"`
}

type QuizEntry struct {
	Type    string   `yaml:"type"`
	Stem    string   `yaml:"stem"`
	Answer  string   `yaml:"answer"`
	Choices []string `yaml:"choices,omitempty"`
}

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	MemosNew     int
	MemosSkipped int
	QuizzesNew   int
	UsersNew     int
	Failed       int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
}

type MemoService interface {
	Exists(ctx context.Context, userID int64, sourceRef string) (bool, error)
	CreateWithQuizzes(ctx context.Context, in memo.Input) (*memo.Memo, []*quiz.Quiz, error)
}

type UserService interface {
	Get(ctx context.Context, id int64) (*user.User, error)
	FindByAccount(ctx context.Context, accountID string) (*user.User, error)
	FindOrCreate(ctx context.Context, accountID, displayName string) (*user.User, bool, error)
}

// Importer reads YAML memo files and writes memos and quizzes to the DB.
type Importer struct {
	memos  MemoService
	users  UserService
	writer io.Writer
}

func NewImporter(memos MemoService, users UserService, writer io.Writer) *Importer {
	return &Importer{memos: memos, users: users, writer: writer}
}

// LoadFile decodes an import file. Unknown keys are rejected.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Decode(f)
}

func Decode(r io.Reader) (*File, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, fmt.Errorf("yaml.Decode > %w", err)
	}
	return &file, nil
}

// Import writes every memo in file. A memo that fails is counted and reported,
// and the rest of the file is still imported. Errors reading existing state abort the run.
func (imp *Importer) Import(ctx context.Context, file *File, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult
	users := map[string]*user.User{}

	for i, entry := range file.Memos {
		if err := ctx.Err(); err != nil {
			return &result, err
		}
		label := entry.Title
		if label == "" {
			label = fmt.Sprintf("memo #%d", i+1)
		}

		owner, err := imp.resolveUser(ctx, entry, users, opts, &result)
		if err != nil {
			fmt.Fprintf(imp.writer, "  [FAIL]  %q: %v\n", label, err)
			result.Failed++
			continue
		}

		if owner != nil {
			exists, err := imp.memos.Exists(ctx, owner.ID, entry.SourceRef)
			if err != nil {
				return &result, fmt.Errorf("Exists(%d, %s) > %w", owner.ID, entry.SourceRef, err)
			}
			if exists {
				fmt.Fprintf(imp.writer, "  [SKIP]  %q (%s)\n", label, entry.SourceRef)
				result.MemosSkipped++
				continue
			}
		}

		quizzes, err := entry.generated()
		if err != nil {
			fmt.Fprintf(imp.writer, "  [FAIL]  %q: %v\n", label, err)
			result.Failed++
			continue
		}

		if opts.DryRun {
			n := len(quizzes)
			if n == 0 {
				n = 1
			}
			fmt.Fprintf(imp.writer, "  [NEW]  %q (%d quizzes)\n", label, n)
			result.MemosNew++
			result.QuizzesNew += n
			continue
		}

		_, created, err := imp.memos.CreateWithQuizzes(ctx, memo.Input{
			UserID:    owner.ID,
			Title:     entry.Title,
			Body:      entry.Body,
			SourceRef: entry.SourceRef,
			Quizzes:   quizzes,
		})
		if err != nil {
			fmt.Fprintf(imp.writer, "  [FAIL]  %q: %v\n", label, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(imp.writer, "  [NEW]  %q (%d quizzes)\n", label, len(created))
		result.MemosNew++
		result.QuizzesNew += len(created)
	}
	return &result, nil
}

// resolveUser returns nil without an error only in dry-run mode for an account that would be created.
func (imp *Importer) resolveUser(ctx context.Context, entry MemoEntry, cache map[string]*user.User, opts ImportOptions, result *ImportResult) (*user.User, error) {
	if entry.UserID > 0 {
		return imp.users.Get(ctx, entry.UserID)
	}
	if entry.Account == "" {
		return nil, errors.New("user_id or account is required")
	}
	if u, ok := cache[entry.Account]; ok {
		return u, nil
	}

	if opts.DryRun {
		u, err := imp.users.FindByAccount(ctx, entry.Account)
		if err != nil {
			return nil, err
		}
		if u == nil {
			fmt.Fprintf(imp.writer, "  [NEW USER]  %s\n", entry.Account)
			result.UsersNew++
		}
		cache[entry.Account] = u
		return u, nil
	}

	u, created, err := imp.users.FindOrCreate(ctx, entry.Account, entry.Name)
	if err != nil {
		return nil, err
	}
	if created {
		fmt.Fprintf(imp.writer, "  [NEW USER]  %s\n", entry.Account)
		result.UsersNew++
	}
	cache[entry.Account] = u
	return u, nil
}

func (entry MemoEntry) generated() ([]quiz.Generated, error) {
	out := make([]quiz.Generated, 0, len(entry.Quizzes))
	for i, q := range entry.Quizzes {
		g := quiz.Generated{
			Type:    quiz.Type(q.Type),
			Stem:    q.Stem,
			Answer:  q.Answer,
			Choices: q.Choices,
		}
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("quiz %d: %w", i+1, err)
		}
		out = append(out, g)
	}
	return out, nil
}
