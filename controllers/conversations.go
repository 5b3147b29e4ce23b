package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nutricoach/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

var errConversationNotFound = errors.New("conversation not found")

type ConversationRequest struct {
	Title string `json:"title"`
}

type MessageRequest struct {
	Message string `json:"message"`
}

type conversationView struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type messageView struct {
	ID        int64      `json:"id"`
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"created_at"`
}

// GET /conversations
func GetConversations(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	db, ok := requireDB(c)
	if !ok {
		return
	}

	var rows []models.Conversation
	if err := db.Where("user_id = ?", user.ID).Order("updated_at desc, id desc").Find(&rows).Error; err != nil {
		RespondInternal(c, fmt.Errorf("list conversations: %w", err))
		return
	}
	out := make([]conversationView, 0, len(rows))
	for _, conv := range rows {
		out = append(out, conversationView{ID: conv.ID, Title: conv.Title, UpdatedAt: conv.UpdatedAt})
	}
	RespondSuccess(c, out)
}

// POST /conversations
func CreateConversation(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req ConversationRequest
	if !bindJSON(c, &req) {
		return
	}
	db, ok := requireDB(c)
	if !ok {
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = models.DEFAULT_CONVERSATION_TITLE
	}
	conv := models.Conversation{UserID: user.ID, Title: title}
	if err := db.Create(&conv).Error; err != nil {
		RespondInternal(c, fmt.Errorf("create conversation: %w", err))
		return
	}
	RespondSuccess(c, gin.H{"id": conv.ID, "title": conv.Title})
}

// DELETE /conversations/:id
func DeleteConversation(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := requireDB(c)
	if !ok {
		return
	}
	conv, err := findOwnedConversation(db, user.ID, id)
	if err != nil {
		respondConversationError(c, err)
		return
	}

	tx := db.Begin()
	if err := tx.Where("conversation_id = ?", conv.ID).Delete(&models.Message{}).Error; err != nil {
		tx.Rollback()
		RespondInternal(c, fmt.Errorf("delete messages: %w", err))
		return
	}
	if err := tx.Delete(&conv).Error; err != nil {
		tx.Rollback()
		RespondInternal(c, fmt.Errorf("delete conversation: %w", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondInternal(c, err)
		return
	}
	RespondSuccess(c, gin.H{"ok": true})
}

// GET /conversations/:id/messages
func GetConversationMessages(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := requireDB(c)
	if !ok {
		return
	}
	conv, err := findOwnedConversation(db, user.ID, id)
	if err != nil {
		respondConversationError(c, err)
		return
	}

	var msgs []models.Message
	if err := db.Where("conversation_id = ?", conv.ID).Order("id asc").Find(&msgs).Error; err != nil {
		RespondInternal(c, fmt.Errorf("list messages: %w", err))
		return
	}
	out := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageView{ID: m.ID, Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt})
	}
	RespondSuccess(c, out)
}

// POST /conversations/:id/messages
func PostConversationMessage(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := requireDB(c)
	if !ok {
		return
	}
	conv, err := findOwnedConversation(db, user.ID, id)
	if err != nil {
		respondConversationError(c, err)
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
	completer, ok := requireCompleter(c)
	if !ok {
		return
	}

	reply, err := runChatTurn(c, db, completer, user.ID, &conv, text)
	if err != nil {
		RespondInternal(c, err)
		return
	}
	RespondSuccess(c, gin.H{"reply": reply.Content, "message_id": reply.ID})
}

// findOwnedConversation treats a conversation of another user as absent.
func findOwnedConversation(db *gorm.DB, userID, id int64) (models.Conversation, error) {
	var conv models.Conversation
	if err := db.First(&conv, id).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return conv, errConversationNotFound
		}
		return conv, fmt.Errorf("load conversation: %w", err)
	}
	if !conv.OwnedBy(userID) {
		return models.Conversation{}, errConversationNotFound
	}
	return conv, nil
}

func respondConversationError(c *gin.Context, err error) {
	if errors.Is(err, errConversationNotFound) {
		RespondError(c, "not found", http.StatusNotFound)
		return
	}
	RespondInternal(c, err)
}
