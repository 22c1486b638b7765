package services

import (
	"adwiz/internal/models/response_models"
	"adwiz/internal/wizard"
)

func toSessionView(s *wizard.Session) response_models.SessionView {
	view := response_models.SessionView{
		ID:            s.ID,
		Step:          s.Step().String(),
		InitialPrompt: s.InitialPrompt,
		IsLoading:     s.Loading,
		ErrorMessage:  s.ErrorMessage,
	}

	switch st := s.State.(type) {
	case *wizard.PromptState:
		// An empty prompt is rejected on submit.
		view.CanSubmit = !s.Loading
	case *wizard.QuestionsState:
		view.CanSubmit = !s.Loading
		view.Fields = formFields(st.Questions, st.Answers)
	case *wizard.ResultState:
		view.Result = &response_models.AdResult{
			ImageURL: st.ImageURL,
			Caption:  st.Caption,
			Download: response_models.DownloadLink{
				Href:     st.ImageURL,
				Filename: response_models.DownloadFilename,
			},
			CanRestart: true,
		}
	}
	return view
}

func formFields(questions []wizard.Question, answers map[int]string) []response_models.FormField {
	fields := make([]response_models.FormField, 0, len(questions))
	for i, q := range questions {
		field := response_models.FormField{
			Index: i,
			Label: q.Prompt,
			Kind:  response_models.FieldKindText,
			Value: answers[i],
		}
		if len(q.Options) > 0 {
			field.Kind = response_models.FieldKindSelect
			field.Options = q.Options
		}
		fields = append(fields, field)
	}
	return fields
}
