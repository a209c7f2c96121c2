package logstream

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferAppendAndOrder(t *testing.T) {
	b := NewBuffer()
	b.Append("one")
	b.Append("two", "three")

	assert.Equal(t, []string{"one", "two", "three"}, b.Lines())
	assert.Equal(t, 3, b.Len())
}

func TestBufferEvictsOldestAtCap(t *testing.T) {
	b := NewBuffer()
	for i := 0; i < 1200; i++ {
		b.Append(fmt.Sprintf("line-%d", i))
	}

	lines := b.Lines()
	require.Len(t, lines, maxBufferedLines)
	assert.Equal(t, "line-200", lines[0])
	assert.Equal(t, "line-1199", lines[len(lines)-1])
}

func TestBufferBatchAppendOverCap(t *testing.T) {
	b := NewBuffer()
	batch := make([]string, 1500)
	for i := range batch {
		batch[i] = fmt.Sprintf("line-%d", i)
	}
	b.Append(batch...)

	lines := b.Lines()
	require.Len(t, lines, maxBufferedLines)
	assert.Equal(t, "line-500", lines[0])
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer()
	b.Append("one")
	b.Clear()

	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Lines())
}

func TestBufferLinesReturnsCopy(t *testing.T) {
	b := NewBuffer()
	b.Append("one", "two")

	lines := b.Lines()
	lines[0] = "mutated"

	assert.Equal(t, []string{"one", "two"}, b.Lines())
}
