//go:build integration

package openai_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/inference/openai"
)

// Run with: OPENAI_API_KEY=your-key go test -tags integration ./internal/inference/openai
func TestClient_Generate_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY environment variable not set, skipping integration test")
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(apiKey, model, 2, zap.NewNop())
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	g, err := client.Generate(ctx, "The Go scheduler multiplexes goroutines onto OS threads using an M:N model.")
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	assert.NotEmpty(t, g.Stem)
}
