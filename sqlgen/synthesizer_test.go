package sqlgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quadrantai/woqa/ai/mock"
	"github.com/quadrantai/woqa/core"
	"github.com/quadrantai/woqa/examples"
	"github.com/quadrantai/woqa/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKnowledge(t *testing.T) *knowledge.Knowledge {
	t.Helper()
	kb, err := knowledge.New("CREATE TABLE TransmissionWorkOrder (TransmissionWorkOrderID INT, WorkOrderNo VARCHAR(50), IsActive BIT)")
	require.NoError(t, err)
	return kb
}

func TestNewSynthesizer(t *testing.T) {
	kb := testKnowledge(t)

	t.Run("valid configuration", func(t *testing.T) {
		s, err := NewSynthesizer(mock.NewMockCompleter(), kb)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("nil completer", func(t *testing.T) {
		_, err := NewSynthesizer(nil, kb)
		assert.Equal(t, ErrCompleterRequired, err)
	})

	t.Run("nil knowledge", func(t *testing.T) {
		_, err := NewSynthesizer(mock.NewMockCompleter(), nil)
		assert.Equal(t, ErrKnowledgeRequired, err)
	})
}

func TestSynthesize(t *testing.T) {
	ctx := context.Background()
	kb := testKnowledge(t)

	t.Run("clean statement passes through", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Enqueue("SELECT WorkOrderNo FROM TransmissionWorkOrder WHERE IsActive = 1;")

		s, err := NewSynthesizer(completer, kb)
		require.NoError(t, err)

		query, err := s.Synthesize(ctx, &core.Question{Text: "List work orders"})
		require.NoError(t, err)
		assert.Equal(t, "SELECT WorkOrderNo FROM TransmissionWorkOrder WHERE IsActive = 1;", query.Statement)
		assert.Equal(t, "List work orders", query.Question.Text)
	})

	t.Run("fenced response is sanitized", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Enqueue("```sql\nSELECT COUNT(*) FROM TransmissionWorkOrder;\n```\nLet me know if you need more!")

		s, err := NewSynthesizer(completer, kb)
		require.NoError(t, err)

		query, err := s.Synthesize(ctx, &core.Question{Text: "How many work orders?"})
		require.NoError(t, err)
		assert.Equal(t, "SELECT COUNT(*) FROM TransmissionWorkOrder;", query.Statement)
	})

	t.Run("mutating response is blanked", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Enqueue("DROP TABLE TransmissionWorkOrder;")

		s, err := NewSynthesizer(completer, kb)
		require.NoError(t, err)

		query, err := s.Synthesize(ctx, &core.Question{Text: "Remove all work orders"})
		require.NoError(t, err)
		assert.Equal(t, "", query.Statement)
	})

	t.Run("completion error propagates", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("model unavailable")
		}

		s, err := NewSynthesizer(completer, kb)
		require.NoError(t, err)

		_, err = s.Synthesize(ctx, &core.Question{Text: "anything"})
		assert.Error(t, err)
	})

	t.Run("blank question still reaches the model", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Enqueue("SELECT 1;")
		s, err := NewSynthesizer(completer, kb)
		require.NoError(t, err)

		query, err := s.Synthesize(ctx, &core.Question{Text: " "})
		require.NoError(t, err)
		assert.Equal(t, "SELECT 1;", query.Statement)
		assert.Equal(t, 1, completer.CallCount())
	})

	t.Run("nil question", func(t *testing.T) {
		s, err := NewSynthesizer(mock.NewMockCompleter(), kb)
		require.NoError(t, err)

		_, err = s.Synthesize(ctx, nil)
		assert.Equal(t, ErrEmptyQuestion, err)
	})
}

func TestSynthesizePrompt(t *testing.T) {
	ctx := context.Background()
	kb := testKnowledge(t)

	t.Run("carries schema, glossary, year and question", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Enqueue("SELECT 1;")

		fixed := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		s, err := NewSynthesizer(completer, kb, WithClock(func() time.Time { return fixed }))
		require.NoError(t, err)

		_, err = s.Synthesize(ctx, &core.Question{Text: "Show welds for WO 100139423P2"})
		require.NoError(t, err)

		prompt := completer.LastPrompt()
		assert.Contains(t, prompt, "CREATE TABLE TransmissionWorkOrder")
		assert.Contains(t, prompt, "- WO: Work Order")
		assert.Contains(t, prompt, "use the current year 2025")
		assert.Contains(t, prompt, "Show welds for WO 100139423P2")
		assert.NotContains(t, prompt, "Reference examples from AI search")
	})

	t.Run("carries prior turns", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Enqueue("SELECT 1;")

		s, err := NewSynthesizer(completer, kb)
		require.NoError(t, err)

		_, err = s.Synthesize(ctx, &core.Question{
			Text: "and how many are welded?",
			Turns: []core.Turn{
				{Role: core.RoleUser, Content: "Show work order 100139423P2"},
			},
		})
		require.NoError(t, err)

		prompt := completer.LastPrompt()
		assert.Contains(t, prompt, "Previous message 1 (user): Show work order 100139423P2")
		assert.Contains(t, prompt, "Current question: and how many are welded?")
	})

	t.Run("includes retrieved example", func(t *testing.T) {
		store, err := examples.NewMemoryStore()
		require.NoError(t, err)
		defer store.Close()

		embedder := mock.NewMockEmbedder()
		exampleText := "Question: how many welds in a work order?\nSELECT COUNT(*) FROM TransmissionISOMainJoint;"
		vector, err := embedder.EmbedText(ctx, exampleText)
		require.NoError(t, err)
		require.NoError(t, store.AddExamples(ctx, &core.Example{Content: exampleText, Vector: vector}))

		searcher, err := examples.NewSearcher(store, embedder)
		require.NoError(t, err)

		completer := mock.NewMockCompleter()
		completer.Enqueue("SELECT COUNT(*) FROM TransmissionISOMainJoint;")

		s, err := NewSynthesizer(completer, kb, WithSearcher(searcher))
		require.NoError(t, err)

		query, err := s.Synthesize(ctx, &core.Question{Text: "how many welds in a work order?"})
		require.NoError(t, err)

		prompt := completer.LastPrompt()
		assert.Contains(t, prompt, "Reference examples from AI search")
		assert.Contains(t, prompt, exampleText)
		assert.Equal(t, exampleText, query.Examples)
	})

	t.Run("retrieval failure proceeds without examples", func(t *testing.T) {
		store, err := examples.NewMemoryStore()
		require.NoError(t, err)
		defer store.Close()

		failing := mock.NewMockEmbedder()
		failing.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("embedding service down")
		}
		searcher, err := examples.NewSearcher(store, failing)
		require.NoError(t, err)

		completer := mock.NewMockCompleter()
		completer.Enqueue("SELECT 1;")

		s, err := NewSynthesizer(completer, kb, WithSearcher(searcher))
		require.NoError(t, err)

		query, err := s.Synthesize(ctx, &core.Question{Text: "anything"})
		require.NoError(t, err)
		assert.Equal(t, "SELECT 1;", query.Statement)
		assert.Empty(t, query.Examples)
	})
}
