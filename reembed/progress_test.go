package reembed

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressTracker(t *testing.T) {
	t.Run("reports at interval", func(t *testing.T) {
		var buf bytes.Buffer
		tracker := NewProgressTracker(&buf, 100, 10)
		tracker.Start()

		tracker.Update(5)
		assert.Empty(t, buf.String())

		tracker.Update(10)
		assert.Contains(t, buf.String(), "10/100")
	})

	t.Run("caps at total", func(t *testing.T) {
		var buf bytes.Buffer
		tracker := NewProgressTracker(&buf, 10, 1)
		tracker.Start()

		tracker.Update(25)
		assert.Contains(t, buf.String(), "10/10")
	})

	t.Run("finish reports full progress", func(t *testing.T) {
		var buf bytes.Buffer
		tracker := NewProgressTracker(&buf, 50, 100)
		tracker.Start()
		tracker.Update(20)
		tracker.Finish()

		out := buf.String()
		assert.Contains(t, out, "50/50")
		assert.Contains(t, out, "100.0%")
		assert.True(t, strings.HasSuffix(out, "\n"))
	})

	t.Run("updates before start are ignored", func(t *testing.T) {
		var buf bytes.Buffer
		tracker := NewProgressTracker(&buf, 10, 1)

		tracker.Update(5)
		tracker.Finish()
		assert.Empty(t, buf.String())
	})

	t.Run("elapsed is zero before start", func(t *testing.T) {
		tracker := NewProgressTracker(&bytes.Buffer{}, 10, 1)
		assert.Zero(t, tracker.Elapsed())
	})

	t.Run("elapsed advances after start", func(t *testing.T) {
		tracker := NewProgressTracker(&bytes.Buffer{}, 10, 1)
		tracker.Start()
		require.GreaterOrEqual(t, tracker.Elapsed().Nanoseconds(), int64(0))
	})
}
