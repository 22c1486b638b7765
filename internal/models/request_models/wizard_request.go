package request_models

type SubmitPromptRequest struct {
	Prompt string `json:"prompt"`
}

type SetAnswerRequest struct {
	Value string `json:"value"`
}

// GenerateRequest carries answers keyed by question index, e.g. {"0": "Teens"}.
type GenerateRequest struct {
	Answers map[int]string `json:"answers,omitempty"`
}
