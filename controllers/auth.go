package controllers

import (
	"fmt"
	"net/http"

	"nutricoach/models"
	"nutricoach/session"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type LoginRequest struct {
	Password string `json:"password"`
}

// POST /login
// Qualquer senha diferente da configurada responde 401 e não cria sessão.
func Login(c *gin.Context) {
	var req LoginRequest
	// malformed bodies count as a wrong password
	_ = c.ShouldBindJSON(&req)

	manager := session.ManagerInstance(c)
	if manager == nil {
		RespondError(c, "session not configured", http.StatusInternalServerError)
		return
	}
	if !manager.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Bad password"})
		return
	}

	db, ok := requireDB(c)
	if !ok {
		return
	}
	user, err := firstOrCreateUser(db)
	if err != nil {
		RespondInternal(c, err)
		return
	}
	if err := manager.Issue(c, user.ID); err != nil {
		RespondInternal(c, err)
		return
	}
	RespondSuccess(c, gin.H{"ok": true})
}

// POST /logout
func Logout(c *gin.Context) {
	if manager := session.ManagerInstance(c); manager != nil {
		manager.Clear(c)
	}
	RespondSuccess(c, gin.H{"ok": true})
}

// firstOrCreateUser returns the lowest-id user, creating it on first login.
func firstOrCreateUser(db *gorm.DB) (models.User, error) {
	var user models.User
	err := db.Order("id asc").First(&user).Error
	if err == nil {
		return user, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return user, fmt.Errorf("load user: %w", err)
	}
	user = models.User{}
	if err := db.Create(&user).Error; err != nil {
		return user, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
