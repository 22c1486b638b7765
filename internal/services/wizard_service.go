package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"adwiz/internal/models/response_models"
	"adwiz/internal/wizard"
	"adwiz/pkg/logger"
	mem "adwiz/pkg/memcache"
	"adwiz/pkg/utils"
)

type WizardServiceInterface interface {
	CreateSession(ctx context.Context) (*response_models.SessionCreated, error)
	GetSession(ctx context.Context, id string) (*response_models.SessionView, error)
	SubmitPrompt(ctx context.Context, id string, prompt string) (*response_models.SessionView, error)
	SetAnswer(ctx context.Context, id string, index int, value string) (*response_models.SessionView, error)
	Generate(ctx context.Context, id string, answers map[int]string) (*response_models.SessionView, error)
	Reset(ctx context.Context, id string) (*response_models.SessionView, error)
}

type WizardService struct {
	sessions mem.Store[*wizard.Session]
	pipeline *wizard.Pipeline
	tokens   *utils.SessionTokens
}

func NewWizardService(
	sessions mem.Store[*wizard.Session],
	pipeline *wizard.Pipeline,
	tokens *utils.SessionTokens,
) WizardServiceInterface {
	return &WizardService{
		sessions: sessions,
		pipeline: pipeline,
		tokens:   tokens,
	}
}

func (w *WizardService) CreateSession(ctx context.Context) (*response_models.SessionCreated, error) {
	id := uuid.NewString()
	session := wizard.NewSession(id)

	token, err := w.tokens.Issue(id)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("failed to sign session token")
		return nil, utils.ErrTokenIssue
	}
	w.sessions.Put(id, session)

	logger.WithContext(ctx).WithField("session_id", id).Info("wizard session created")
	return &response_models.SessionCreated{
		Token:   token,
		Session: toSessionView(session),
	}, nil
}

func (w *WizardService) GetSession(ctx context.Context, id string) (*response_models.SessionView, error) {
	var view response_models.SessionView
	err := w.sessions.Peek(id, func(s *wizard.Session) error {
		view = toSessionView(s)
		return nil
	})
	if err != nil {
		return nil, translateSessionErr(err)
	}
	return &view, nil
}

func (w *WizardService) SubmitPrompt(ctx context.Context, id string, prompt string) (*response_models.SessionView, error) {
	var ticket wizard.Ticket
	err := w.sessions.Update(id, func(s *wizard.Session) error {
		t, err := s.BeginPrompt(prompt)
		ticket = t
		return err
	})
	if err != nil {
		return nil, translateSessionErr(err)
	}

	// The call outlives a disconnected client; its result is applied or dropped by ticket.
	callCtx := context.WithoutCancel(ctx)
	questions, callErr := w.pipeline.DeriveQuestions(callCtx, prompt)
	log := sessionLog(ctx, id)
	if callErr != nil {
		log.WithError(callErr).Warn("questions call failed")
	} else {
		log.Infof("derived %d questions", len(questions))
	}

	return w.finish(id, func(s *wizard.Session) bool {
		return s.FinishPrompt(ticket, questions, callErr)
	}, log)
}

func (w *WizardService) SetAnswer(ctx context.Context, id string, index int, value string) (*response_models.SessionView, error) {
	var view response_models.SessionView
	err := w.sessions.Update(id, func(s *wizard.Session) error {
		if err := s.SetAnswer(index, value); err != nil {
			return err
		}
		view = toSessionView(s)
		return nil
	})
	if err != nil {
		return nil, translateSessionErr(err)
	}
	return &view, nil
}

func (w *WizardService) Generate(ctx context.Context, id string, answers map[int]string) (*response_models.SessionView, error) {
	var (
		ticket wizard.Ticket
		input  wizard.GenerateInput
	)
	err := w.sessions.Update(id, func(s *wizard.Session) error {
		t, in, err := s.BeginGenerate(answers)
		ticket, input = t, in
		return err
	})
	if err != nil {
		return nil, translateSessionErr(err)
	}

	outcome := w.pipeline.Generate(context.WithoutCancel(ctx), input)
	log := sessionLog(ctx, id)
	switch {
	case outcome.Err != nil:
		log.WithError(outcome.Err).Warn("ad generation failed")
	case outcome.CaptionErr != nil:
		log.WithError(outcome.CaptionErr).Warn("ad generated without caption")
	default:
		log.Info("ad generated")
	}

	return w.finish(id, func(s *wizard.Session) bool {
		return s.FinishGenerate(ticket, outcome)
	}, log)
}

func (w *WizardService) Reset(ctx context.Context, id string) (*response_models.SessionView, error) {
	var view response_models.SessionView
	err := w.sessions.Update(id, func(s *wizard.Session) error {
		s.Reset()
		view = toSessionView(s)
		return nil
	})
	if err != nil {
		return nil, translateSessionErr(err)
	}
	sessionLog(ctx, id).Info("wizard session reset")
	return &view, nil
}

// finish applies a call result under the store lock and returns the view the
// session ends up in, which is the reset view when the result was dropped.
func (w *WizardService) finish(id string, apply func(*wizard.Session) bool, log *logrus.Entry) (*response_models.SessionView, error) {
	var view response_models.SessionView
	err := w.sessions.Update(id, func(s *wizard.Session) error {
		if !apply(s) {
			log.Info("discarding result of a call started before reset")
		}
		view = toSessionView(s)
		return nil
	})
	if err != nil {
		return nil, translateSessionErr(err)
	}
	return &view, nil
}

func sessionLog(ctx context.Context, id string) *logrus.Entry {
	return logger.WithContext(ctx).WithField("session_id", id)
}

func translateSessionErr(err error) error {
	switch {
	case errors.Is(err, mem.ErrNotFound):
		return utils.ErrSessionNotFound
	case errors.Is(err, wizard.ErrBusy):
		return utils.ErrSessionBusy
	case errors.Is(err, wizard.ErrWrongStep):
		return utils.ErrInvalidStep
	case errors.Is(err, wizard.ErrEmptyPrompt):
		return utils.ErrEmptyPrompt
	case errors.Is(err, wizard.ErrAnswerIndex):
		return utils.ErrInvalidAnswerIndex
	default:
		return err
	}
}
