package wizard_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adwiz/internal/wizard"
)

type gatewayCall struct {
	endpoint string
	payload  any
}

type reply struct {
	body any
	err  error
}

// scriptedGateway answers calls in order from replies and records every call.
type scriptedGateway struct {
	calls   []gatewayCall
	replies []reply
}

func (g *scriptedGateway) Call(_ context.Context, endpoint string, payload any, out any) error {
	g.calls = append(g.calls, gatewayCall{endpoint: endpoint, payload: payload})
	if len(g.replies) == 0 {
		return errors.New("unexpected call")
	}
	r := g.replies[0]
	g.replies = g.replies[1:]
	if r.err != nil {
		return r.err
	}
	raw, err := json.Marshal(r.body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func chat(content string) reply {
	return reply{body: openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}},
	}}
}

func image(url string) reply {
	return reply{body: openai.ImageResponse{
		Data: []openai.ImageResponseDataInner{{URL: url}},
	}}
}

func failure(message string) reply {
	return reply{err: &wizard.ProviderError{Message: message}}
}

func newPipeline(captions bool, replies ...reply) (*wizard.Pipeline, *scriptedGateway) {
	gw := &scriptedGateway{replies: replies}
	opts := wizard.DefaultOptions()
	opts.Captions = captions
	return wizard.NewPipeline(gw, opts), gw
}

const twoQuestionsJSON = `[{"question":"Who is the target segment?","options":["Teens","Adults"]},{"question":"Any discount?","options":["None","10%"]}]`

var generateInput = wizard.GenerateInput{
	InitialPrompt: "make an ad for sweatshirts",
	Questions: []wizard.Question{
		{Prompt: "Who is the target segment?", Options: []string{"Teens", "Adults"}},
		{Prompt: "Any discount?", Options: []string{"None", "10%"}},
	},
	Answers: map[int]string{0: "Teens"},
}

func TestDeriveQuestions(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		p, gw := newPipeline(false, chat(twoQuestionsJSON))

		qs, err := p.DeriveQuestions(context.Background(), "make an ad for sweatshirts")
		require.NoError(t, err)
		require.Len(t, qs, 2)
		assert.Equal(t, "Any discount?", qs[1].Prompt)

		require.Len(t, gw.calls, 1)
		assert.Equal(t, wizard.EndpointChatCompletions, gw.calls[0].endpoint)
		req, ok := gw.calls[0].payload.(openai.ChatCompletionRequest)
		require.True(t, ok)
		assert.Equal(t, openai.GPT4oMini, req.Model)
		assert.InDelta(t, 0.7, req.Temperature, 0.0001)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
		assert.Contains(t, req.Messages[1].Content, `"make an ad for sweatshirts"`)
	})

	t.Run("ProseAroundArray", func(t *testing.T) {
		p, _ := newPipeline(false, chat("Here you go:\n"+twoQuestionsJSON+"\nGood luck!"))

		qs, err := p.DeriveQuestions(context.Background(), "sweatshirts")
		require.NoError(t, err)
		assert.Len(t, qs, 2)
	})

	t.Run("NoArray", func(t *testing.T) {
		p, _ := newPipeline(false, chat("Sorry, I can't help with that."))

		_, err := p.DeriveQuestions(context.Background(), "sweatshirts")
		require.ErrorIs(t, err, wizard.ErrNoQuestionArray)
		assert.Equal(t, "Failed to generate form.", wizard.ErrorMessage(err))
	})

	t.Run("ProviderError", func(t *testing.T) {
		p, _ := newPipeline(false, failure("Rate limit reached"))

		_, err := p.DeriveQuestions(context.Background(), "sweatshirts")
		require.Error(t, err)
		assert.Equal(t, "Rate limit reached", wizard.ErrorMessage(err))
	})

	t.Run("NoChoices", func(t *testing.T) {
		p, _ := newPipeline(false, reply{body: openai.ChatCompletionResponse{}})

		_, err := p.DeriveQuestions(context.Background(), "sweatshirts")
		assert.ErrorIs(t, err, wizard.ErrNoChoices)
	})
}

func TestGenerate(t *testing.T) {
	t.Run("ImageOnly", func(t *testing.T) {
		longPrompt := strings.Repeat("a", 380)
		p, gw := newPipeline(false, chat("  "+longPrompt+"\n"), image("https://img.example/ad.png"))

		out := p.Generate(context.Background(), generateInput)
		require.NoError(t, out.Err)
		assert.Equal(t, "https://img.example/ad.png", out.ImageURL)
		assert.Empty(t, out.Caption)
		assert.NoError(t, out.CaptionErr)

		require.Len(t, gw.calls, 2)
		promptReq := gw.calls[0].payload.(openai.ChatCompletionRequest)
		assert.InDelta(t, 0.8, promptReq.Temperature, 0.0001)
		assert.Equal(t,
			`Original request: "make an ad for sweatshirts". Details: Who is the target segment? Teens. Any discount? Not specified`,
			promptReq.Messages[1].Content)

		assert.Equal(t, wizard.EndpointImageGenerations, gw.calls[1].endpoint)
		imgReq, ok := gw.calls[1].payload.(openai.ImageRequest)
		require.True(t, ok)
		assert.Equal(t, longPrompt, imgReq.Prompt)
		assert.Equal(t, openai.CreateImageModelDallE3, imgReq.Model)
		assert.Equal(t, openai.CreateImageSize1024x1024, imgReq.Size)
		assert.Equal(t, openai.CreateImageQualityStandard, imgReq.Quality)
		assert.Equal(t, 1, imgReq.N)
	})

	t.Run("WithCaption", func(t *testing.T) {
		p, gw := newPipeline(true,
			chat("cozy sweatshirt scene"),
			image("https://img.example/ad.png"),
			chat(`"Cozy up this fall"`),
		)

		out := p.Generate(context.Background(), generateInput)
		require.NoError(t, out.Err)
		assert.Equal(t, "Cozy up this fall", out.Caption)
		require.Len(t, gw.calls, 3)
		assert.Equal(t, wizard.EndpointChatCompletions, gw.calls[2].endpoint)
	})

	t.Run("CaptionFailureKeepsImage", func(t *testing.T) {
		p, _ := newPipeline(true,
			chat("cozy sweatshirt scene"),
			image("https://img.example/ad.png"),
			failure(""),
		)

		out := p.Generate(context.Background(), generateInput)
		require.NoError(t, out.Err)
		assert.Equal(t, "https://img.example/ad.png", out.ImageURL)
		require.Error(t, out.CaptionErr)
		assert.Equal(t, "Failed to generate caption", wizard.ErrorMessage(out.CaptionErr))
	})

	t.Run("ImageProviderErrorStops", func(t *testing.T) {
		p, gw := newPipeline(true,
			chat("cozy sweatshirt scene"),
			failure("Your request was rejected as a result of our safety system."),
		)

		out := p.Generate(context.Background(), generateInput)
		require.Error(t, out.Err)
		assert.Empty(t, out.ImageURL)
		assert.Equal(t, "Your request was rejected as a result of our safety system.", wizard.ErrorMessage(out.Err))
		assert.Len(t, gw.calls, 2)
	})

	t.Run("ImagePromptFailureStops", func(t *testing.T) {
		p, gw := newPipeline(false, failure(""))

		out := p.Generate(context.Background(), generateInput)
		require.Error(t, out.Err)
		assert.Equal(t, "Failed to generate image prompt", wizard.ErrorMessage(out.Err))
		assert.Len(t, gw.calls, 1)
	})

	t.Run("EmptyImageData", func(t *testing.T) {
		p, _ := newPipeline(false, chat("scene"), reply{body: openai.ImageResponse{}})

		out := p.Generate(context.Background(), generateInput)
		require.ErrorIs(t, out.Err, wizard.ErrNoImage)
		assert.Equal(t, "Failed to generate image", wizard.ErrorMessage(out.Err))
	})
}
