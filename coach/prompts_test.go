package coach

import (
	"fmt"
	"testing"

	"nutricoach/models"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func history(n int) []models.Message {
	out := make([]models.Message, 0, n)
	for i := 1; i <= n; i++ {
		role := models.MESSAGE_ROLE_USER
		if i%2 == 0 {
			role = models.MESSAGE_ROLE_ASSISTANT
		}
		out = append(out, models.Message{ID: int64(i), Role: role, Content: fmt.Sprintf("m%d", i)})
	}
	return out
}

func TestChatMessagesSlidingWindow(t *testing.T) {
	msgs := ChatMessages(nil, history(20), "new question")

	require.Len(t, msgs, 1+HistoryWindow+1)
	assert.Equal(t, openai.ChatMessageRoleSystem, msgs[0].Role)
	assert.Equal(t, CoachSystemPrompt, msgs[0].Content)
	assert.Equal(t, "m9", msgs[1].Content)
	assert.Equal(t, "m20", msgs[HistoryWindow].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, msgs[len(msgs)-1].Role)
	assert.Equal(t, "new question", msgs[len(msgs)-1].Content)
}

func TestChatMessagesShortHistory(t *testing.T) {
	msgs := ChatMessages(nil, history(3), "hi")
	require.Len(t, msgs, 5)
	assert.Equal(t, "m1", msgs[1].Content)
	assert.Equal(t, openai.ChatMessageRoleAssistant, msgs[2].Role)
}

func TestSystemPromptIncludesPreferences(t *testing.T) {
	assert.Equal(t, CoachSystemPrompt, SystemPrompt(models.PreferenceData{}))

	got := SystemPrompt(models.PreferenceData{"diet": "vegetarian"})
	assert.Equal(t, CoachSystemPrompt+` User preferences: {"diet":"vegetarian"}`, got)
}

func TestMealPlanMessages(t *testing.T) {
	msgs := MealPlanMessages(float64(180), float64(70), float64(220), "no pork")
	require.Len(t, msgs, 2)
	assert.Equal(t, PlanSystemPrompt, msgs[0].Content)
	assert.Contains(t, msgs[1].Content, "180g protein, 70g fat, 220g carbs")
	assert.Contains(t, msgs[1].Content, "Preferences: no pork")
}

func TestAdviceMessages(t *testing.T) {
	macros := map[string]any{"P": float64(40)}

	analyze := AnalyzeMealMessages("2 eggs and toast", macros)
	assert.Contains(t, analyze[1].Content, `Targets: {"P":40}. Meal: 2 eggs and toast.`)

	estimate := EstimateMacrosMessages("a burrito")
	assert.Equal(t, "Estimate calories/macros: a burrito. Output: Calories ~xxxx | P xx | C xx | F xx.", estimate[1].Content)

	swaps := SuggestSwapsMessages("pasta", macros)
	assert.Equal(t, "Actionable and brief.", swaps[0].Content)
	assert.Contains(t, swaps[1].Content, `match {"P":40}. Meal: pasta.`)
}
