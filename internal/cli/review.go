// Package cli runs an interactive review session in the terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/memoquiz/internal/attempt"
	"github.com/at-ishikawa/memoquiz/internal/clock"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
)

//go:generate mockgen -source=review.go -destination=../mocks/cli/mock_review.go -package=mock_cli

var errEnd = errors.New("end")

type QuizLister interface {
	ListForUser(ctx context.Context, userID int64, statuses ...quiz.Status) ([]quiz.Quiz, error)
}

type Answerer interface {
	Record(ctx context.Context, quizID, userID int64, rawAnswer string) (*attempt.Result, error)
}

// Summary counts the answers given in one session.
type Summary struct {
	Answered int
	Correct  int
}

// ReviewCLI asks the user's due quizzes one at a time and records each answer.
type ReviewCLI struct {
	quizzes      QuizLister
	answers      Answerer
	clock        clock.Clock
	location     *time.Location
	userID       int64
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	green        *color.Color
	red          *color.Color
}

func NewReviewCLI(quizzes QuizLister, answers Answerer, clk clock.Clock, loc *time.Location, userID int64, in io.Reader, out io.Writer) *ReviewCLI {
	return &ReviewCLI{
		quizzes:      quizzes,
		answers:      answers,
		clock:        clk,
		location:     loc,
		userID:       userID,
		stdinReader:  bufio.NewReader(in),
		stdoutWriter: out,
		bold:         color.New(color.Bold),
		green:        color.New(color.FgGreen),
		red:          color.New(color.FgRed),
	}
}

// Due returns the user's unfinished quizzes scheduled up to the end of today, oldest first.
func (cli *ReviewCLI) Due(ctx context.Context) ([]quiz.Quiz, error) {
	all, err := cli.quizzes.ListForUser(ctx, cli.userID, quiz.StatusToday, quiz.StatusDay1, quiz.StatusDay7)
	if err != nil {
		return nil, fmt.Errorf("ListForUser(%d) > %w", cli.userID, err)
	}
	end := clock.EndOfDay(cli.clock.Now(), cli.location)
	due := make([]quiz.Quiz, 0, len(all))
	for _, q := range all {
		if !q.ScheduledAt.After(end) {
			due = append(due, q)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].ScheduledAt.Before(due[j].ScheduledAt) })
	return due, nil
}

// Run asks every due quiz until the input ends or the user types "quit".
func (cli *ReviewCLI) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	due, err := cli.Due(ctx)
	if err != nil {
		return summary, err
	}
	if len(due) == 0 {
		fmt.Fprintln(cli.stdoutWriter, "No quizzes to review today.")
		return summary, nil
	}

	for i := range due {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		correct, err := cli.session(ctx, i+1, len(due), &due[i])
		if errors.Is(err, errEnd) {
			break
		}
		if err != nil {
			return summary, err
		}
		summary.Answered++
		if correct {
			summary.Correct++
		}
	}
	fmt.Fprintf(cli.stdoutWriter, "\n%d/%d correct\n", summary.Correct, summary.Answered)
	return summary, nil
}

func (cli *ReviewCLI) session(ctx context.Context, n, total int, q *quiz.Quiz) (bool, error) {
	fmt.Fprintf(cli.stdoutWriter, "\n[%d/%d] ", n, total)
	cli.bold.Fprintln(cli.stdoutWriter, q.Stem)
	if len(q.Choices) > 0 {
		fmt.Fprintf(cli.stdoutWriter, "  (%s)\n", strings.Join(q.Choices, " / "))
	}

	for {
		fmt.Fprint(cli.stdoutWriter, "> ")
		line, err := cli.stdinReader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("read answer > %w", err)
		}
		answer := strings.TrimSpace(line)
		if answer == "quit" || (answer == "" && errors.Is(err, io.EOF)) {
			return false, errEnd
		}
		if answer == "" {
			continue
		}

		res, recordErr := cli.answers.Record(ctx, q.ID, cli.userID, answer)
		if recordErr != nil {
			return false, fmt.Errorf("Record(%d) > %w", q.ID, recordErr)
		}
		next := "finished"
		if res.Status != quiz.StatusDone {
			next = fmt.Sprintf("next review %s", res.ScheduledAt.In(cli.location).Format("2006-01-02 15:04"))
		}
		if res.IsCorrect {
			cli.green.Fprintf(cli.stdoutWriter, "Correct. (%s)\n", next)
		} else {
			cli.red.Fprintf(cli.stdoutWriter, "Wrong. The answer is %q. (%s)\n", res.CanonicalAnswer, next)
		}
		return res.IsCorrect, nil
	}
}
