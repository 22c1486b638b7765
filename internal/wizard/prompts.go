package wizard

import "fmt"

const questionsSystemPrompt = "You are a marketing expert. Generate contextual form questions based on the user's ad request. " +
	"Return ONLY a JSON array with this exact structure: " +
	`[{"question": "question text", "options": ["option1", "option2", "option3"]}]. ` +
	"Questions should cover: target segment, positioning, product features, pricing/discount, availability, promotion channels, and color theme."

const imagePromptSystemPrompt = "You are an expert at creating DALL-E prompts for advertising images. " +
	"Create a detailed, visual prompt for an ad image based on the user's answers. " +
	"Focus on visual elements, composition, style, and atmosphere. Keep it under 400 characters. " +
	"Return ONLY the prompt text, no explanations."

const captionSystemPrompt = "You are an expert advertising copywriter. " +
	"Write a single short promotional caption for the ad described by the user's answers. " +
	"Keep it under 150 characters. Return ONLY the caption text, no explanations."

func questionsUserPrompt(initialPrompt string) string {
	return fmt.Sprintf("Generate form questions for this ad request: \"%s\"", initialPrompt)
}

func detailsUserPrompt(initialPrompt, flattened string) string {
	return fmt.Sprintf("Original request: \"%s\". Details: %s", initialPrompt, flattened)
}
