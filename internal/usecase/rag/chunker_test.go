package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	c := NewChunker(1000, 200)

	chunks := c.Split("Alice: we shipped the feature.")

	assert.Equal(t, []string{"Alice: we shipped the feature."}, chunks)
}

func TestSplit_EmptyText(t *testing.T) {
	c := NewChunker(1000, 200)

	assert.Nil(t, c.Split(""))
	assert.Nil(t, c.Split("   \n  "))
}

func TestSplit_RespectsChunkSize(t *testing.T) {
	c := NewChunker(100, 20)

	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("Speaker: this is one line of the transcript.\n")
	}
	chunks := c.Split(sb.String())

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 100+20, "chunk exceeds window plus overlap: %q", chunk)
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestSplit_OverlapCarriesContext(t *testing.T) {
	c := NewChunker(80, 30)

	text := strings.Repeat("alpha beta gamma delta epsilon zeta. ", 20)
	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)

	// Each chunk after the first starts with text already seen in its
	// predecessor
	for i := 1; i < len(chunks); i++ {
		firstWord := chunks[i]
		if idx := strings.IndexByte(firstWord, ' '); idx > 0 {
			firstWord = firstWord[:idx]
		}
		assert.Contains(t, chunks[i-1], firstWord)
	}
}

func TestSplit_Deterministic(t *testing.T) {
	c := NewChunker(120, 30)
	text := strings.Repeat("Bob: the numbers look good this week. Alice: agreed, keep going.\n\n", 15)

	first := c.Split(text)
	second := c.Split(text)

	assert.Equal(t, first, second)
}

func TestSplit_HardSplitWithoutSeparators(t *testing.T) {
	c := NewChunker(50, 10)

	text := strings.Repeat("x", 180)
	chunks := c.Split(text)

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 60)
	}
	// No content lost
	assert.Equal(t, 180, len(strings.Join(chunks, ""))-overlapLen(chunks, c))
}

// overlapLen counts the characters re-added between consecutive chunks so the
// reassembled length can be compared against the input
func overlapLen(chunks []string, c *Chunker) int {
	total := 0
	for i := 1; i < len(chunks); i++ {
		max := c.overlap
		if len(chunks[i]) < max {
			max = len(chunks[i])
		}
		for n := max; n > 0; n-- {
			if strings.HasSuffix(chunks[i-1], chunks[i][:n]) {
				total += n
				break
			}
		}
	}
	return total
}

func TestNewChunker_Defaults(t *testing.T) {
	c := NewChunker(0, -1)

	assert.Equal(t, 1000, c.chunkSize)
	assert.Equal(t, 200, c.overlap)
}
