// Package chunker splits document text into bounded-size segments suitable
// for independent embedding. Splitting happens at sentence boundaries so a
// chunk never cuts a sentence in half; the size limit is a soft target, not a
// hard cap.
package chunker

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxChunkSize is the default chunk size in runes. It targets the
// context window of small embedding models with headroom to spare.
const DefaultMaxChunkSize = 500

// sentence terminators, ASCII and full-width CJK.
const terminators = ".!?。！？"

// Split splits text into chunks of at most maxChunkSize runes by greedily
// packing consecutive sentences. A single sentence longer than maxChunkSize
// becomes its own oversized chunk rather than being truncated. Empty and
// whitespace-only chunks are dropped.
func Split(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultMaxChunkSize
	}

	sentences := splitSentences(text)

	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, sentence := range sentences {
		sentenceLen := utf8.RuneCountInString(sentence)

		// +1 accounts for the joining space.
		joinedLen := currentLen + sentenceLen
		if currentLen > 0 {
			joinedLen++
		}

		if currentLen > 0 && joinedLen > maxChunkSize {
			chunks = appendChunk(chunks, current.String())
			current.Reset()
			currentLen = 0
		}

		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(sentence)
		currentLen += sentenceLen
	}

	return appendChunk(chunks, current.String())
}

// splitSentences splits text after runs of sentence-ending punctuation,
// keeping the terminators attached to their sentence. Whitespace between
// sentences is discarded; it is reintroduced as a single space when chunks
// are assembled.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	inTerminator := false

	for _, r := range text {
		if strings.ContainsRune(terminators, r) {
			current.WriteRune(r)
			inTerminator = true
			continue
		}

		if inTerminator {
			// First rune past a terminator run closes the sentence.
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
			inTerminator = false
		}
		current.WriteRune(r)
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func appendChunk(chunks []string, chunk string) []string {
	if strings.TrimSpace(chunk) == "" {
		return chunks
	}
	return append(chunks, chunk)
}
