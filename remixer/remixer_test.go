package remixer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLLM records every prompt it receives and replies with a fixed
// completion (or error).
type countingLLM struct {
	calls   int
	prompts []Prompt
	reply   string
	err     error
}

func (c *countingLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	c.calls++
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func TestNew(t *testing.T) {
	t.Run("requires an llm client", func(t *testing.T) {
		_, err := New(nil, ToneCatalog{})
		assert.Error(t, err)
	})

	t.Run("requires a catalog", func(t *testing.T) {
		_, err := New(&countingLLM{reply: "x"}, nil)
		assert.Error(t, err)
	})
}

func TestRemixer_Remix(t *testing.T) {
	t.Run("returns the completion verbatim with one upstream call", func(t *testing.T) {
		llm := &countingLLM{reply: "Yo, we just dropped our product!"}
		rx, err := New(llm, ToneCatalog{})
		require.NoError(t, err)

		result, err := rx.Remix(context.Background(), "Our product launched today.", "casual")
		require.NoError(t, err)
		assert.Equal(t, "Yo, we just dropped our product!", result.RemixedText)
		assert.Equal(t, "casual", result.Mode)
		assert.Nil(t, result.ParsedItems)
		assert.Equal(t, 1, llm.calls)
	})

	t.Run("sends the resolved system and user messages", func(t *testing.T) {
		llm := &countingLLM{reply: "ok"}
		rx, err := New(llm, ToneCatalog{})
		require.NoError(t, err)

		_, err = rx.Remix(context.Background(), "hello", "funny")
		require.NoError(t, err)
		require.Len(t, llm.prompts, 1)
		assert.Equal(t, toneSystemInstruction, llm.prompts[0].System)
		assert.Equal(t, `Rewrite the following text in a funny style: "hello"`, llm.prompts[0].User)
	})

	t.Run("unknown tones reach the provider verbatim", func(t *testing.T) {
		llm := &countingLLM{reply: "ok"}
		rx, err := New(llm, ToneCatalog{})
		require.NoError(t, err)

		result, err := rx.Remix(context.Background(), "hello", "sarcastic")
		require.NoError(t, err)
		assert.Equal(t, "sarcastic", result.Mode)
		require.Len(t, llm.prompts, 1)
		assert.Equal(t, `Rewrite the following text in a sarcastic style: "hello"`, llm.prompts[0].User)
	})

	t.Run("derives parsed items for list-oriented modes", func(t *testing.T) {
		llm := &countingLLM{reply: "1. First\n2. Second"}
		rx, err := New(llm, AudienceCatalog{})
		require.NoError(t, err)

		result, err := rx.Remix(context.Background(), "launch announcement", "twitter")
		require.NoError(t, err)
		assert.Equal(t, "1. First\n2. Second", result.RemixedText)
		assert.Equal(t, []string{"First", "Second"}, result.ParsedItems)
	})

	t.Run("propagates provider errors without retrying", func(t *testing.T) {
		llm := &countingLLM{err: errors.New("rate limited")}
		rx, err := New(llm, ToneCatalog{})
		require.NoError(t, err)

		_, err = rx.Remix(context.Background(), "text", "professional")
		assert.EqualError(t, err, "rate limited")
		assert.Equal(t, 1, llm.calls)
	})

	t.Run("empty completion is an error", func(t *testing.T) {
		llm := &countingLLM{reply: "   \n"}
		rx, err := New(llm, ToneCatalog{})
		require.NoError(t, err)

		_, err = rx.Remix(context.Background(), "text", "casual")
		assert.Error(t, err)
	})
}
