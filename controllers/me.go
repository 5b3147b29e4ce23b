package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /me
func Me(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	db, ok := requireDB(c)
	if !ok {
		return
	}
	prefs, err := loadPreferences(db, user.ID)
	if err != nil {
		RespondInternal(c, err)
		return
	}
	RespondSuccess(c, gin.H{"id": user.ID, "preferences": prefs})
}
