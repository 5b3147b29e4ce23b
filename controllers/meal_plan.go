package controllers

import (
	"fmt"

	"nutricoach/coach"
	"nutricoach/logger"

	"github.com/gin-gonic/gin"
)

type MealPlanRequest struct {
	Protein any `json:"protein"`
	Fat     any `json:"fat"`
	Carbs   any `json:"carbs"`
	Prefs   any `json:"prefs"`
}

// POST /plan
// Sempre devolve um plano: se o modelo não retornar um array JSON válido, usa o plano padrão.
func GenerateMealPlan(c *gin.Context) {
	var req MealPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	completer, ok := requireCompleter(c)
	if !ok {
		return
	}

	raw, err := completer.Complete(c.Request.Context(),
		coach.MealPlanMessages(req.Protein, req.Fat, req.Carbs, req.Prefs),
		coach.PlanOptions,
	)
	if err != nil {
		RespondInternal(c, fmt.Errorf("meal plan completion: %w", err))
		return
	}

	meals, fallback := coach.ParseMealPlan(raw)
	if fallback {
		logger.FromContext(c).Warn("meal plan response unusable, serving fallback plan", "raw_len", len(raw))
	}
	RespondSuccess(c, gin.H{"meals": meals})
}
