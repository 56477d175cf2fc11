package llm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuiz_Variants(t *testing.T) {
	want := []QuizQuestion{
		{Question: "Q1?", Options: []string{"a", "b"}, Answer: "a"},
	}
	raw := `[{"question":"Q1?","options":["a","b"],"answer":"a"}]`

	cases := map[string]string{
		"bare":          raw,
		"json fence":    "```json\n" + raw + "\n```",
		"plain fence":   "```\n" + raw + "\n```",
		"padded":        "\n\n  " + raw + "  \n",
		"inline fences": "```json" + raw + "```",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseQuiz(input)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ParseQuiz mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseQuiz_Failures(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"only fences":     "```json\n```",
		"prose":           "Here is your quiz!",
		"prose prefix":    `Sure: [{"question":"Q","options":["a","b"],"answer":"a"}]`,
		"truncated":       `[{"question":"Q","options":["a","b"]`,
		"object":          `{"question":"Q","options":["a","b"],"answer":"a"}`,
		"empty array":     `[]`,
		"one option":      `[{"question":"Q","options":["a"],"answer":"a"}]`,
		"missing answer":  `[{"question":"Q","options":["a","b"]}]`,
		"blank question":  `[{"question":"  ","options":["a","b"],"answer":"a"}]`,
		"second is wrong": `[{"question":"Q","options":["a","b"],"answer":"a"},{"question":"Q2"}]`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseQuiz(input)
			assert.ErrorIs(t, err, ErrQuizParse)
			assert.Nil(t, got)
		})
	}
}

func TestParseQuiz_AnswerOutsideOptionsIsAccepted(t *testing.T) {
	got, err := ParseQuiz(`[{"question":"Q","options":["a","b"],"answer":"c"}]`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, -1, got[0].AnswerIndex())
}

func TestQuizQuestion_AnswerIndex(t *testing.T) {
	q := QuizQuestion{Question: "Q", Options: []string{"x", "y", "z"}, Answer: "y"}
	assert.Equal(t, 1, q.AnswerIndex())
}

func TestDecodeJSON_NilValidator(t *testing.T) {
	got, err := DecodeJSON[map[string]int]("```json\n{\"a\": 1}\n```", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, got)
}
