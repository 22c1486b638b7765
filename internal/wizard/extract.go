package wizard

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

const notSpecified = "Not specified"

// ExtractQuestions decodes the question array embedded in a model response.
// The array is taken greedily from the first '[' to the last ']', so prose
// around it is ignored.
func ExtractQuestions(text string) ([]Question, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return nil, ErrNoQuestionArray
	}

	var questions []Question
	if err := json.Unmarshal([]byte(text[start:end+1]), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadQuestions, err)
	}
	return questions, nil
}

// Flatten renders questions and answers into one description, in question
// order. Missing or empty answers become "Not specified".
func Flatten(questions []Question, answers map[int]string) string {
	parts := make([]string, 0, len(questions))
	for i, q := range questions {
		answer := answers[i]
		if answer == "" {
			answer = notSpecified
		}
		parts = append(parts, q.Prompt+" "+answer)
	}
	return strings.Join(parts, ". ")
}

var quotePairs = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'“':  '”',
	'‘':  '’',
}

// StripQuotes removes one pair of matching surrounding quotes.
func StripQuotes(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	closing, ok := quotePairs[first]
	if !ok {
		return s
	}
	last, lastSize := utf8.DecodeLastRuneInString(s)
	if len(s) < size+lastSize || last != closing {
		return s
	}
	return s[size : len(s)-lastSize]
}
