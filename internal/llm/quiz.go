package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QuizQuestion is one multiple-choice question. Answer is the text of the
// correct option as the model gave it.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// SchemaValidator validates a decoded value.
type SchemaValidator[T any] func(T) error

// DecodeJSON strips markdown code-fence markers from raw model output and
// decodes what remains as T. Surrounding prose is not tolerated.
func DecodeJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	cleaned := strings.TrimSpace(stripFenceMarkers(raw))
	if cleaned == "" {
		return zero, fmt.Errorf("%w: empty response", ErrQuizParse)
	}

	var result T
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrQuizParse, err)
	}
	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrQuizParse, err)
		}
	}
	return result, nil
}

// stripFenceMarkers removes every ```json and ``` marker wherever it appears.
func stripFenceMarkers(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	return strings.ReplaceAll(s, "```", "")
}

// ParseQuiz decodes a quiz. It never returns a partial result: any malformed
// question fails the whole quiz.
func ParseQuiz(raw string) ([]QuizQuestion, error) {
	return DecodeJSON(raw, validateQuiz)
}

func validateQuiz(qs []QuizQuestion) error {
	if len(qs) == 0 {
		return fmt.Errorf("no questions")
	}
	for i, q := range qs {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %d: empty question text", i+1)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d: need at least 2 options, got %d", i+1, len(q.Options))
		}
		if strings.TrimSpace(q.Answer) == "" {
			return fmt.Errorf("question %d: missing answer", i+1)
		}
	}
	return nil
}

// AnswerIndex returns the position of Answer among Options, or -1 when the
// model's answer matches none of them exactly.
func (q QuizQuestion) AnswerIndex() int {
	for i, opt := range q.Options {
		if opt == q.Answer {
			return i
		}
	}
	return -1
}
