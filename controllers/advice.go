package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"nutricoach/coach"
	"nutricoach/tools"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
)

type MealTextRequest struct {
	Text   string `json:"text"`
	Macros any    `json:"macros"`
}

// POST /analyze_meal
func AnalyzeMeal(c *gin.Context) {
	respondAdvice(c, "advice", coach.AnalyzeMealOptions, func(req MealTextRequest) []openai.ChatCompletionMessage {
		return coach.AnalyzeMealMessages(req.Text, req.Macros)
	})
}

// POST /estimate_macros
func EstimateMacros(c *gin.Context) {
	respondAdvice(c, "summary", coach.EstimateMacrosOptions, func(req MealTextRequest) []openai.ChatCompletionMessage {
		return coach.EstimateMacrosMessages(req.Text)
	})
}

// POST /suggest_swaps
func SuggestSwaps(c *gin.Context) {
	respondAdvice(c, "swaps", coach.SuggestSwapsOptions, func(req MealTextRequest) []openai.ChatCompletionMessage {
		return coach.SuggestSwapsMessages(req.Text, req.Macros)
	})
}

// respondAdvice runs one free-text completion and answers {key: text}.
func respondAdvice(c *gin.Context, key string, opts tools.CompletionOptions, build func(MealTextRequest) []openai.ChatCompletionMessage) {
	var req MealTextRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		RespondError(c, "text required", http.StatusBadRequest)
		return
	}
	if req.Macros == nil {
		req.Macros = map[string]any{}
	}
	completer, ok := requireCompleter(c)
	if !ok {
		return
	}

	text, err := completer.Complete(c.Request.Context(), build(req), opts)
	if err != nil {
		RespondInternal(c, fmt.Errorf("%s completion: %w", key, err))
		return
	}
	RespondSuccess(c, gin.H{key: text})
}
