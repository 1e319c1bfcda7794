package rag

import "strings"

// Chunker splits transcripts into overlapping windows for embedding.
// Splits prefer paragraph, then sentence, then word boundaries.
type Chunker struct {
	chunkSize int
	overlap   int
}

// separator cascade, coarsest first
var separators = []string{"\n\n", "\n", ". ", "! ", "? ", ", ", " ", ""}

// NewChunker creates a chunker with the given window size and overlap
func NewChunker(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// Split chunks text into windows of at most chunkSize characters with the
// configured overlap between consecutive windows
func (c *Chunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= c.chunkSize {
		return []string{text}
	}

	pieces := c.split(text, 0)

	// Merge pieces into windows and re-add overlap between neighbors
	var chunks []string
	var current strings.Builder
	for _, piece := range pieces {
		if current.Len() > 0 && current.Len()+len(piece) > c.chunkSize {
			chunk := strings.TrimSpace(current.String())
			if chunk != "" {
				chunks = append(chunks, chunk)
			}
			tail := overlapTail(current.String(), c.overlap)
			current.Reset()
			current.WriteString(tail)
		}
		current.WriteString(piece)
	}
	if chunk := strings.TrimSpace(current.String()); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// split recursively breaks text with the separator cascade until every piece
// fits the window
func (c *Chunker) split(text string, sepIndex int) []string {
	if len(text) <= c.chunkSize {
		return []string{text}
	}
	if sepIndex >= len(separators) {
		return hardSplit(text, c.chunkSize)
	}

	sep := separators[sepIndex]
	if sep == "" {
		return hardSplit(text, c.chunkSize)
	}

	parts := strings.SplitAfter(text, sep)
	if len(parts) == 1 {
		return c.split(text, sepIndex+1)
	}

	var out []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		if len(part) <= c.chunkSize {
			out = append(out, part)
		} else {
			out = append(out, c.split(part, sepIndex+1)...)
		}
	}
	return out
}

// hardSplit cuts text at fixed offsets when no separator fits
func hardSplit(text string, size int) []string {
	var out []string
	for len(text) > size {
		out = append(out, text[:size])
		text = text[size:]
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}

// overlapTail returns the last n characters, extended left to a space so the
// overlap does not start mid-word
func overlapTail(text string, n int) string {
	if n <= 0 || len(text) <= n {
		if n <= 0 {
			return ""
		}
		return text
	}
	tail := text[len(text)-n:]
	if idx := strings.IndexByte(tail, ' '); idx > 0 && idx < len(tail)-1 {
		tail = tail[idx+1:]
	}
	return tail
}
