package controllers

import (
	"fmt"
	"net/http"

	"nutricoach/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type PreferencesRequest struct {
	Data models.PreferenceData `json:"data"`
}

// GET /preferences
func GetPreferences(c *gin.Context) {
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
	RespondSuccess(c, gin.H{"data": prefs})
}

// POST /preferences
// Substitui o documento inteiro; a linha é criada no primeiro POST.
func SavePreferences(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req PreferencesRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := models.EncodePreferenceData(req.Data)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db, ok := requireDB(c)
	if !ok {
		return
	}

	var pref models.Preference
	err = db.Where("user_id = ?", user.ID).First(&pref).Error
	switch {
	case err == nil:
		err = db.Model(&pref).Update("data", data).Error
	case gorm.IsRecordNotFoundError(err):
		pref = models.Preference{UserID: user.ID, Data: data}
		err = db.Create(&pref).Error
	}
	if err != nil {
		RespondInternal(c, fmt.Errorf("save preferences: %w", err))
		return
	}
	RespondSuccess(c, gin.H{"ok": true})
}

// loadPreferences returns the user's document, empty when none is stored.
func loadPreferences(db *gorm.DB, userID int64) (models.PreferenceData, error) {
	var pref models.Preference
	if err := db.Where("user_id = ?", userID).First(&pref).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return models.PreferenceData{}, nil
		}
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	return pref.Decode(), nil
}
