package response

import (
	"strings"
)

const (
	// FlashcardMinLength is the length a line must exceed to become a flashcard
	FlashcardMinLength = 30
	// MaxFlashcards caps the number of flashcards per response
	MaxFlashcards = 10
)

// Parse turns the raw model output into the response text
func Parse(text string) string {
	return strings.TrimSpace(text)
}

// ExtractFlashcards splits text into lines and keeps, in order, the first
// MaxFlashcards trimmed lines longer than FlashcardMinLength characters.
// The result is never nil.
func ExtractFlashcards(text string) []string {
	flashcards := make([]string, 0, MaxFlashcards)
	for _, line := range strings.Split(text, "\n") {
		if len(flashcards) >= MaxFlashcards {
			break
		}
		line = strings.TrimSpace(line)
		if len([]rune(line)) > FlashcardMinLength {
			flashcards = append(flashcards, line)
		}
	}
	return flashcards
}
