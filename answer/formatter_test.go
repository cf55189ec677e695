package answer

import (
	"context"
	"errors"
	"testing"

	"github.com/quadrantai/woqa/ai/mock"
	"github.com/quadrantai/woqa/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormatter(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		f, err := NewFormatter(mock.NewMockCompleter())
		require.NoError(t, err)
		assert.NotNil(t, f)
	})

	t.Run("nil completer", func(t *testing.T) {
		_, err := NewFormatter(nil)
		assert.Equal(t, ErrCompleterRequired, err)
	})
}

func TestFormat(t *testing.T) {
	ctx := context.Background()

	singleRow := &core.ResultSet{
		Columns: []string{"WeldCount"},
		Rows:    [][]any{{int64(134)}},
	}

	t.Run("single row yields answer object", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Enqueue(`{"answer": "There are 134 welds in work order 100139423P2."}`)

		f, err := NewFormatter(completer)
		require.NoError(t, err)

		value, err := f.Format(ctx, "how many welds in WO 100139423P2?", "SELECT COUNT(*) ...", singleRow)
		require.NoError(t, err)

		obj, ok := value.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "There are 134 welds in work order 100139423P2.", obj["answer"])
	})

	t.Run("multiple rows yield array", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Enqueue(`[{"WeldNumber": "W-1"}, {"WeldNumber": "W-2"}]`)

		f, err := NewFormatter(completer)
		require.NoError(t, err)

		result := &core.ResultSet{
			Columns: []string{"WeldNumber"},
			Rows:    [][]any{{"W-1"}, {"W-2"}},
		}
		value, err := f.Format(ctx, "list welds", "SELECT JointID AS WeldNumber ...", result)
		require.NoError(t, err)

		arr, ok := value.([]any)
		require.True(t, ok)
		assert.Len(t, arr, 2)
	})

	t.Run("fenced response parses", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Enqueue("```json\n{\"answer\": \"No matching records.\"}\n```")

		f, err := NewFormatter(completer)
		require.NoError(t, err)

		value, err := f.Format(ctx, "q", "SELECT 1", &core.ResultSet{})
		require.NoError(t, err)

		obj, ok := value.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "No matching records.", obj["answer"])
	})

	t.Run("unparseable response falls back to raw text", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Enqueue("The work order has 134 welds in total.")

		f, err := NewFormatter(completer)
		require.NoError(t, err)

		value, err := f.Format(ctx, "q", "SELECT 1", singleRow)
		require.NoError(t, err)
		assert.Equal(t, "The work order has 134 welds in total.", value)
	})

	t.Run("prompt carries question, sql, columns and rows", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Enqueue(`{"answer": "ok"}`)

		f, err := NewFormatter(completer)
		require.NoError(t, err)

		_, err = f.Format(ctx, "how many welds?", "SELECT COUNT(*) FROM TransmissionISOMainJoint;", singleRow)
		require.NoError(t, err)

		prompt := completer.LastPrompt()
		assert.Contains(t, prompt, "how many welds?")
		assert.Contains(t, prompt, "SELECT COUNT(*) FROM TransmissionISOMainJoint;")
		assert.Contains(t, prompt, "WeldCount")
		assert.Contains(t, prompt, "134")
	})

	t.Run("nil result set formats as empty", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Enqueue(`{"answer": "No records were found for your question."}`)

		f, err := NewFormatter(completer)
		require.NoError(t, err)

		value, err := f.Format(ctx, "q", "SELECT 1", nil)
		require.NoError(t, err)
		assert.NotNil(t, value)
	})

	t.Run("completion error propagates", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("model unavailable")
		}

		f, err := NewFormatter(completer)
		require.NoError(t, err)

		_, err = f.Format(ctx, "q", "SELECT 1", singleRow)
		assert.Error(t, err)
	})
}

func TestParseRepairsMissingKeyQuotes(t *testing.T) {
	value := Parse(`{answer": "fixed"}`, nil)
	obj, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "fixed", obj["answer"])
}

func TestRepairJSON(t *testing.T) {
	t.Run("repairs key after brace", func(t *testing.T) {
		assert.Equal(t, `{"answer": "x"}`, repairJSON(`{answer": "x"}`))
	})

	t.Run("repairs key after comma", func(t *testing.T) {
		assert.Equal(t, `{"a": 1, "b": 2}`, repairJSON(`{"a": 1, b": 2}`))
	})

	t.Run("valid json untouched", func(t *testing.T) {
		in := `{"answer": "already fine"}`
		assert.Equal(t, in, repairJSON(in))
	})
}
