// Package openai generates quizzes from memo text with the OpenAI chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"go.uber.org/zap"
	"resty.dev/v3"

	"github.com/at-ishikawa/memoquiz/internal/quiz"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
	logger           *zap.Logger
}

func NewClient(apiKey, model string, retryAttempts uint, logger *zap.Logger) *Client {
	client := resty.New()
	client.SetBaseURL(defaultBaseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
		logger:           logger.Named("openai"),
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

func (client *Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// generatedQuiz is the JSON object the model is asked to return.
type generatedQuiz struct {
	Type    string   `json:"type"`
	Stem    string   `json:"stem"`
	Answer  string   `json:"answer"`
	Choices []string `json:"choices,omitempty"`
}

type responseError struct {
	statusCode int
	body       string
}

func (e *responseError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.statusCode, e.body)
}

var errDecode = errors.New("decode quiz")

const systemPrompt = `You write one review question for a learner from their own memo.

Return ONLY a JSON object with these keys:
- "type": "cloze" or "true_false"
- "stem": for cloze, a sentence from the memo with the key term replaced by "___"; for true_false, a statement about the memo
- "answer": for cloze, the removed term exactly as it appears in the memo; for true_false, "True" or "False"

RULES
- Ask about the single most important fact of the memo.
- Write the stem in the same language as the memo.
- Never put the answer inside a cloze stem.
- No text outside the JSON object.`

// isRetryableError reports whether err is worth another attempt.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var respErr *responseError
	if errors.As(err, &respErr) {
		return respErr.statusCode >= http.StatusInternalServerError || respErr.statusCode == http.StatusTooManyRequests
	}
	if errors.Is(err, errDecode) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "connection reset")
}

// Generate implements quiz.Generator.
func (client *Client) Generate(ctx context.Context, text string) (*quiz.Generated, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("memo text is empty")
	}

	var result *quiz.Generated
	if err := retry.Do(
		func() error {
			generated, err := client.generate(ctx, text)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				client.logger.Info("retrying quiz generation", zap.Error(err))
				return err
			}
			result = generated
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return nil, err
	}
	return result, nil
}

func (client *Client) generate(ctx context.Context, text string) (*quiz.Generated, error) {
	requestBody := ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: text},
		},
		Temperature:    0.2,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return nil, &responseError{statusCode: response.StatusCode(), body: response.String()}
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices: %s", errDecode, response.String())
	}
	content := strings.TrimSpace(responseBody.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty content", errDecode)
	}
	client.logger.Debug("openai response",
		zap.String("model", responseBody.Model),
		zap.Int("total_tokens", responseBody.Usage.TotalTokens),
	)

	var decoded generatedQuiz
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		return nil, fmt.Errorf("%w: json.Unmarshal(%s) > %v", errDecode, content, err)
	}

	g := &quiz.Generated{
		Type:    quiz.Type(strings.ToLower(strings.TrimSpace(decoded.Type))),
		Stem:    decoded.Stem,
		Answer:  decoded.Answer,
		Choices: decoded.Choices,
	}
	if g.Type == quiz.TypeTrueFalse && len(g.Choices) == 0 {
		g.Choices = []string{quiz.AnswerTrue, quiz.AnswerFalse}
	}
	return g, nil
}
