// Package assets holds the embedded templates for the learner quiz page.
package assets

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// QuizPageName is the name the quiz page template is registered under.
const QuizPageName = "quiz.html.tmpl"

//go:embed templates/quiz.html.tmpl
var fallbackQuizPageTemplate string

// QuizPage is the data the quiz page template renders.
type QuizPage struct {
	Title     string
	Stem      string
	Choices   []string
	QuizID    int64
	Token     string
	AnswerURL string
	Error     string
}

// ParseQuizPageTemplate parses templatePath when it exists and falls back to the embedded page.
// The result is always registered as QuizPageName.
func ParseQuizPageTemplate(templatePath string, logger *zap.Logger) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := parseFile(templatePath)
			if err == nil {
				return tmpl, nil
			}
			logger.Warn("failed to parse the quiz page template, using the embedded one",
				zap.String("template_path", filepath.Clean(templatePath)),
				zap.Error(err),
			)
		}
	}

	tmpl, err := template.New(QuizPageName).Parse(fallbackQuizPageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

func parseFile(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, err
	}
	return template.New(QuizPageName).Parse(string(content))
}
