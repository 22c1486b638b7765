package wizard

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"adwiz/pkg/logger"
)

// Provider endpoints, relative to the provider base URL.
const (
	EndpointChatCompletions  = "chat/completions"
	EndpointImageGenerations = "images/generations"
)

// Gateway carries one provider call. Implementations decode the provider
// response into out, or return a *ProviderError for an error envelope.
type Gateway interface {
	Call(ctx context.Context, endpoint string, payload any, out any) error
}

type Options struct {
	ChatModel    string
	ImageModel   string
	ImageSize    string
	ImageQuality string
	// Captions enables the caption call after the image is generated.
	Captions bool
}

func DefaultOptions() Options {
	return Options{
		ChatModel:    openai.GPT4oMini,
		ImageModel:   openai.CreateImageModelDallE3,
		ImageSize:    openai.CreateImageSize1024x1024,
		ImageQuality: openai.CreateImageQualityStandard,
	}
}

var tracer = otel.Tracer("adwiz/wizard")

type Pipeline struct {
	gateway Gateway
	opts    Options
}

func NewPipeline(gateway Gateway, opts Options) *Pipeline {
	return &Pipeline{gateway: gateway, opts: opts}
}

func (p *Pipeline) CaptionsEnabled() bool {
	return p.opts.Captions
}

func (p *Pipeline) complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: p.opts.ChatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
	}

	var resp openai.ChatCompletionResponse
	if err := p.gateway.Call(ctx, EndpointChatCompletions, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *Pipeline) DeriveQuestions(ctx context.Context, initialPrompt string) ([]Question, error) {
	ctx, span := tracer.Start(ctx, "wizard.derive_questions")
	defer span.End()

	content, err := p.complete(ctx, questionsSystemPrompt, questionsUserPrompt(initialPrompt), 0.7)
	if err != nil {
		return nil, &CallError{Call: CallQuestions, Err: err}
	}

	questions, err := ExtractQuestions(content)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Debugf("unparseable questions response: %s", content)
		span.SetStatus(codes.Error, err.Error())
		return nil, &CallError{Call: CallQuestions, Err: err}
	}
	span.SetAttributes(attribute.Int("wizard.questions", len(questions)))
	return questions, nil
}

func (p *Pipeline) SynthesizeImagePrompt(ctx context.Context, initialPrompt, flattened string) (string, error) {
	content, err := p.complete(ctx, imagePromptSystemPrompt, detailsUserPrompt(initialPrompt, flattened), 0.8)
	if err != nil {
		return "", &CallError{Call: CallImagePrompt, Err: err}
	}
	return strings.TrimSpace(content), nil
}

func (p *Pipeline) GenerateImage(ctx context.Context, prompt string) (string, error) {
	req := openai.ImageRequest{
		Model:   p.opts.ImageModel,
		Prompt:  prompt,
		N:       1,
		Size:    p.opts.ImageSize,
		Quality: p.opts.ImageQuality,
	}

	var resp openai.ImageResponse
	if err := p.gateway.Call(ctx, EndpointImageGenerations, req, &resp); err != nil {
		return "", &CallError{Call: CallImage, Err: err}
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", &CallError{Call: CallImage, Err: ErrNoImage}
	}
	return resp.Data[0].URL, nil
}

func (p *Pipeline) SynthesizeCaption(ctx context.Context, initialPrompt, flattened string) (string, error) {
	content, err := p.complete(ctx, captionSystemPrompt, detailsUserPrompt(initialPrompt, flattened), 0.8)
	if err != nil {
		return "", &CallError{Call: CallCaption, Err: err}
	}
	return StripQuotes(strings.TrimSpace(content)), nil
}

// Generate runs image prompt, image and (if enabled) caption in order. Nothing
// is retried; a failed image prompt or image stops the run.
func (p *Pipeline) Generate(ctx context.Context, in GenerateInput) GenerateOutcome {
	ctx, span := tracer.Start(ctx, "wizard.generate")
	defer span.End()
	span.SetAttributes(attribute.Bool("wizard.captions", p.opts.Captions))

	log := logger.WithContext(ctx)
	flattened := in.Flattened()

	imagePrompt, err := p.SynthesizeImagePrompt(ctx, in.InitialPrompt, flattened)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return GenerateOutcome{Err: err}
	}
	log.Debugf("image prompt (%d chars): %s", len(imagePrompt), imagePrompt)
	span.SetAttributes(attribute.Int("wizard.image_prompt_chars", len(imagePrompt)))

	url, err := p.GenerateImage(ctx, imagePrompt)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return GenerateOutcome{Err: err}
	}

	out := GenerateOutcome{ImageURL: url}
	if p.opts.Captions {
		out.Caption, out.CaptionErr = p.SynthesizeCaption(ctx, in.InitialPrompt, flattened)
	}
	return out
}
