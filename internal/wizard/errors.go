package wizard

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPrompt     = errors.New("prompt is empty")
	ErrWrongStep       = errors.New("action not allowed in the current step")
	ErrBusy            = errors.New("a generation is already in flight")
	ErrAnswerIndex     = errors.New("answer index out of range")
	ErrNoQuestionArray = errors.New("no JSON array found in model response")
	ErrBadQuestions    = errors.New("model response array is not valid question JSON")
	ErrNoChoices       = errors.New("provider returned no choices")
	ErrNoImage         = errors.New("provider returned no image")
)

// Calls of the pipeline, used to attribute failures.
const (
	CallQuestions   = "questions"
	CallImagePrompt = "image_prompt"
	CallImage       = "image"
	CallCaption     = "caption"
)

var fallbackMessages = map[string]string{
	CallQuestions:   "Failed to generate form.",
	CallImagePrompt: "Failed to generate image prompt",
	CallImage:       "Failed to generate image",
	CallCaption:     "Failed to generate caption",
}

const genericMessage = "Something went wrong"

// ProviderError is an error envelope returned through the relay, either by the
// provider itself or by the relay on a transport failure.
type ProviderError struct {
	Message string
	Type    string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return "provider request failed"
	}
	return e.Message
}

// CallError attributes a failure to one pipeline call.
type CallError struct {
	Call string
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s call: %v", e.Call, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// ErrorMessage picks the text shown to the user for err: the provider's own
// message when there is one, otherwise the fallback of the failing call.
func ErrorMessage(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	var ce *CallError
	if errors.As(err, &ce) {
		if msg, ok := fallbackMessages[ce.Call]; ok {
			return msg
		}
	}
	return genericMessage
}
