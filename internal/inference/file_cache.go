// Package inference holds helpers shared by quiz generators.
package inference

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/quiz"
)

type cachedQuiz struct {
	Type    quiz.Type `json:"type"`
	Stem    string    `json:"stem"`
	Answer  string    `json:"answer"`
	Choices []string  `json:"choices,omitempty"`
}

// FileCache wraps a generator and keeps each result as a JSON file named after the memo body hash,
// so re-running an import does not generate the same memo twice.
type FileCache struct {
	next    quiz.Generator
	rootDir string
	logger  *zap.Logger
}

func NewFileCache(next quiz.Generator, cacheDirectory string, logger *zap.Logger) *FileCache {
	return &FileCache{
		next:    next,
		rootDir: cacheDirectory,
		logger:  logger.Named("generator_cache"),
	}
}

func (c *FileCache) filePath(text string) string {
	sum := sha256.Sum256([]byte(text))
	return filepath.Join(c.rootDir, hex.EncodeToString(sum[:])+".json")
}

func (c *FileCache) Generate(ctx context.Context, text string) (*quiz.Generated, error) {
	path := c.filePath(text)
	if g, err := c.read(path); err == nil {
		return g, nil
	} else if !os.IsNotExist(err) {
		c.logger.Warn("ignoring unreadable cache entry", zap.String("path", path), zap.Error(err))
	}

	g, err := c.next.Generate(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := c.write(path, g); err != nil {
		c.logger.Warn("failed to write cache entry", zap.String("path", path), zap.Error(err))
	}
	return g, nil
}

func (c *FileCache) read(path string) (*quiz.Generated, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entry cachedQuiz
	if err := json.Unmarshal(contents, &entry); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return &quiz.Generated{Type: entry.Type, Stem: entry.Stem, Answer: entry.Answer, Choices: entry.Choices}, nil
}

func (c *FileCache) write(path string, g *quiz.Generated) error {
	if err := os.MkdirAll(c.rootDir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll > %w", err)
	}
	contents, err := json.Marshal(cachedQuiz{Type: g.Type, Stem: g.Stem, Answer: g.Answer, Choices: g.Choices})
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile > %w", err)
	}
	return nil
}
