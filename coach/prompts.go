package coach

import (
	"encoding/json"
	"fmt"

	"nutricoach/models"
	"nutricoach/tools"

	"github.com/sashabaranov/go-openai"
)

const (
	CoachSystemPrompt = "You are an expert AI nutrition coach. Be concise and practical."
	PlanSystemPrompt  = "Return ONLY strict JSON, no commentary."

	// HistoryWindow is how many stored messages precede the new one in a chat turn.
	HistoryWindow = 12
)

var (
	ChatOptions           = tools.CompletionOptions{MaxTokens: 500, Temperature: 0.4}
	PlanOptions           = tools.CompletionOptions{MaxTokens: 700, Temperature: 0.2}
	AnalyzeMealOptions    = tools.CompletionOptions{MaxTokens: 220, Temperature: 0.4}
	EstimateMacrosOptions = tools.CompletionOptions{MaxTokens: 180, Temperature: 0.4}
	SuggestSwapsOptions   = tools.CompletionOptions{MaxTokens: 220, Temperature: 0.4}
)

// SystemPrompt appends the user's preference document, when there is one.
func SystemPrompt(prefs models.PreferenceData) string {
	if len(prefs) == 0 {
		return CoachSystemPrompt
	}
	return CoachSystemPrompt + " User preferences: " + literal(prefs)
}

// ChatMessages builds system + the last HistoryWindow stored messages + the new user text.
// history must be in insertion order.
func ChatMessages(prefs models.PreferenceData, history []models.Message, text string) []openai.ChatCompletionMessage {
	window := Window(history, HistoryWindow)
	out := make([]openai.ChatCompletionMessage, 0, len(window)+2)
	out = append(out, tools.SystemMessage(SystemPrompt(prefs)))
	for _, m := range window {
		out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return append(out, tools.UserMessage(text))
}

// Window keeps the last n messages.
func Window(history []models.Message, n int) []models.Message {
	if n <= 0 {
		return nil
	}
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// MealPlanMessages asks for a 4-meal JSON array hitting the given macro targets.
func MealPlanMessages(protein, fat, carbs, prefs any) []openai.ChatCompletionMessage {
	prompt := fmt.Sprintf("Create a simple 1-day meal plan (Breakfast, Lunch, Dinner, Snack) that roughly hits "+
		"%sg protein, %sg fat, %sg carbs. Output JSON array with 4 meals; each item must have: "+
		"title, kcal (int), macros {P,C,F}, items (3-6 ingredients). Keep prep simple and cost-aware. "+
		"Preferences: %s", literal(protein), literal(fat), literal(carbs), optionalText(prefs))
	return []openai.ChatCompletionMessage{
		tools.SystemMessage(PlanSystemPrompt),
		tools.UserMessage(prompt),
	}
}

func AnalyzeMealMessages(meal string, macros any) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		tools.SystemMessage("Be concise, bullet-y."),
		tools.UserMessage("Analyze this meal for approximate calories and macros. " +
			"Then give 2–3 quick swap ideas to better match targets. " +
			fmt.Sprintf("Targets: %s. Meal: %s. Keep it under 120 words.", literal(macros), meal)),
	}
}

func EstimateMacrosMessages(meal string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		tools.SystemMessage("Keep it short."),
		tools.UserMessage(fmt.Sprintf("Estimate calories/macros: %s. Output: Calories ~xxxx | P xx | C xx | F xx.", meal)),
	}
}

func SuggestSwapsMessages(meal string, macros any) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		tools.SystemMessage("Actionable and brief."),
		tools.UserMessage(fmt.Sprintf("Suggest 3–5 swaps to match %s. Meal: %s. Format: Swap -> Reason (P/C/F impact).", literal(macros), meal)),
	}
}

// literal renders a value for prompt interpolation: strings as-is,
// everything else as compact JSON.
func literal(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case json.RawMessage:
		return string(t)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func optionalText(v any) string {
	if v == nil {
		return ""
	}
	return literal(v)
}
