package controllers

import "github.com/gin-gonic/gin"

// GET /health
func Health(c *gin.Context) {
	RespondSuccess(c, gin.H{"ok": true})
}
