package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"nutricoach/coach"
	"nutricoach/logger"
	"nutricoach/models"
	"nutricoach/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// POST /chat
// Conversa com o coach usando a conversa mais recente do usuário (cria "Coach" se não houver).
func Chat(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req MessageRequest
	if !bindJSON(c, &req) {
		return
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		RespondError(c, "message required", http.StatusBadRequest)
		return
	}
	db, ok := requireDB(c)
	if !ok {
		return
	}
	completer, ok := requireCompleter(c)
	if !ok {
		return
	}

	conv, err := latestConversation(db, user.ID)
	if err != nil {
		RespondInternal(c, err)
		return
	}

	reply, err := runChatTurn(c, db, completer, user.ID, &conv, text)
	if err != nil {
		RespondInternal(c, err)
		return
	}
	RespondSuccess(c, gin.H{"reply": reply.Content})
}

// latestConversation returns the most recently updated conversation,
// creating one when the user has none.
func latestConversation(db *gorm.DB, userID int64) (models.Conversation, error) {
	var conv models.Conversation
	err := db.Where("user_id = ?", userID).Order("updated_at desc, id desc").First(&conv).Error
	if err == nil {
		return conv, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return conv, fmt.Errorf("load latest conversation: %w", err)
	}
	conv = models.Conversation{UserID: userID, Title: models.CHAT_CONVERSATION_TITLE}
	if err := db.Create(&conv).Error; err != nil {
		return conv, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// runChatTurn asks the model for a reply to text, with the conversation's
// recent history as context, and stores the (user, assistant) pair.
// Nothing is written when the completion call fails.
func runChatTurn(c *gin.Context, db *gorm.DB, completer tools.Completer, userID int64, conv *models.Conversation, text string) (models.Message, error) {
	prefs, err := loadPreferences(db, userID)
	if err != nil {
		return models.Message{}, err
	}
	history, err := recentMessages(db, conv.ID, coach.HistoryWindow)
	if err != nil {
		return models.Message{}, err
	}

	start := time.Now()
	replyText, err := completer.Complete(c.Request.Context(), coach.ChatMessages(prefs, history, text), coach.ChatOptions)
	if err != nil {
		return models.Message{}, fmt.Errorf("chat completion: %w", err)
	}
	logger.FromContext(c).Debug("chat completion",
		"conversation_id", conv.ID,
		"history", len(history),
		"latency", time.Since(start),
	)

	now := time.Now()
	userMsg := models.Message{ConversationID: conv.ID, Role: models.MESSAGE_ROLE_USER, Content: text, CreatedAt: &now}
	reply := models.Message{ConversationID: conv.ID, Role: models.MESSAGE_ROLE_ASSISTANT, Content: replyText, CreatedAt: &now}

	tx := db.Begin()
	if err := tx.Create(&userMsg).Error; err != nil {
		tx.Rollback()
		return models.Message{}, fmt.Errorf("save user message: %w", err)
	}
	if err := tx.Create(&reply).Error; err != nil {
		tx.Rollback()
		return models.Message{}, fmt.Errorf("save assistant message: %w", err)
	}
	if err := tx.Model(conv).Update("updated_at", now).Error; err != nil {
		tx.Rollback()
		return models.Message{}, fmt.Errorf("touch conversation: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Message{}, fmt.Errorf("commit chat turn: %w", err)
	}
	return reply, nil
}

// recentMessages returns the last n messages in insertion order.
func recentMessages(db *gorm.DB, conversationID int64, n int) ([]models.Message, error) {
	var msgs []models.Message
	if err := db.Where("conversation_id = ?", conversationID).Order("id desc").Limit(n).Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
