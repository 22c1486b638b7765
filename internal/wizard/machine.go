package wizard

import (
	"strings"
)

// GenerateInput is the snapshot the generation pipeline works from. It shares
// nothing with the session, so answers edited mid-flight do not leak in.
type GenerateInput struct {
	InitialPrompt string
	Questions     []Question
	Answers       map[int]string
}

func (in GenerateInput) Flattened() string {
	return Flatten(in.Questions, in.Answers)
}

// GenerateOutcome is what the pipeline reports back for a generate run.
type GenerateOutcome struct {
	ImageURL string
	Caption  string
	// Err is set when the image prompt or the image itself failed.
	Err error
	// CaptionErr does not block the result.
	CaptionErr error
}

func (s *Session) BeginPrompt(prompt string) (Ticket, error) {
	if s.Loading {
		return Ticket{}, ErrBusy
	}
	if s.Step() != StepPrompt {
		return Ticket{}, ErrWrongStep
	}
	if strings.TrimSpace(prompt) == "" {
		return Ticket{}, ErrEmptyPrompt
	}

	s.InitialPrompt = prompt
	s.Loading = true
	s.ErrorMessage = ""
	return Ticket{epoch: s.epoch}, nil
}

// FinishPrompt applies the result of the questions call. It reports false when
// the ticket is stale and the result was dropped.
func (s *Session) FinishPrompt(t Ticket, questions []Question, err error) bool {
	if t.epoch != s.epoch {
		return false
	}
	s.Loading = false
	if err != nil {
		s.ErrorMessage = ErrorMessage(err)
		return true
	}

	s.State = &QuestionsState{
		Questions: questions,
		Answers:   make(map[int]string),
	}
	return true
}

func (s *Session) SetAnswer(index int, value string) error {
	qs, ok := s.State.(*QuestionsState)
	if !ok {
		return ErrWrongStep
	}
	if index < 0 || index >= len(qs.Questions) {
		return ErrAnswerIndex
	}
	qs.Answers[index] = value
	return nil
}

// BeginGenerate merges answers into the session and marks it loading. Answers
// are validated before anything is written.
func (s *Session) BeginGenerate(answers map[int]string) (Ticket, GenerateInput, error) {
	if s.Loading {
		return Ticket{}, GenerateInput{}, ErrBusy
	}
	qs, ok := s.State.(*QuestionsState)
	if !ok {
		return Ticket{}, GenerateInput{}, ErrWrongStep
	}
	for i := range answers {
		if i < 0 || i >= len(qs.Questions) {
			return Ticket{}, GenerateInput{}, ErrAnswerIndex
		}
	}
	for i, v := range answers {
		qs.Answers[i] = v
	}

	s.Loading = true
	s.ErrorMessage = ""

	in := GenerateInput{
		InitialPrompt: s.InitialPrompt,
		Questions:     append([]Question(nil), qs.Questions...),
		Answers:       make(map[int]string, len(qs.Answers)),
	}
	for i, v := range qs.Answers {
		in.Answers[i] = v
	}
	return Ticket{epoch: s.epoch}, in, nil
}

func (s *Session) FinishGenerate(t Ticket, out GenerateOutcome) bool {
	if t.epoch != s.epoch {
		return false
	}
	s.Loading = false
	if out.Err != nil {
		s.ErrorMessage = ErrorMessage(out.Err)
		return true
	}

	qs, ok := s.State.(*QuestionsState)
	if !ok {
		return false
	}
	s.State = &ResultState{
		Questions: qs.Questions,
		Answers:   qs.Answers,
		ImageURL:  out.ImageURL,
		Caption:   out.Caption,
	}
	// TODO: confirm with product whether a failed caption should keep the user
	// on the questions step like a failed image does.
	if out.CaptionErr != nil {
		s.ErrorMessage = ErrorMessage(out.CaptionErr)
	}
	return true
}

// Reset returns the session to the prompt step and drops any in-flight result.
func (s *Session) Reset() {
	s.epoch++
	s.InitialPrompt = ""
	s.State = &PromptState{}
	s.Loading = false
	s.ErrorMessage = ""
}
