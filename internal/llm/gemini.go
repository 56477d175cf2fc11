package llm

// Wire types for POST models/{model}:generateContent.

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates   []candidate `json:"candidates"`
	ModelVersion string      `json:"modelVersion,omitempty"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

func newGenerateContentRequest(prompt string) generateContentRequest {
	return generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
}

// firstText returns candidates[0].content.parts[0].text, or NoContentText
// when any step of that path is missing or empty.
func (r generateContentResponse) firstText() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return NoContentText
	}
	if text := r.Candidates[0].Content.Parts[0].Text; text != "" {
		return text
	}
	return NoContentText
}
