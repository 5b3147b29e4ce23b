package controllers

import (
	"net/http"

	"nutricoach/logger"

	"github.com/gin-gonic/gin"
)

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondInternal logs err and answers 500 with its text.
func RespondInternal(c *gin.Context, err error) {
	logger.FromContext(c).Error("request failed", "error", err)
	RespondError(c, err.Error(), http.StatusInternalServerError)
}
