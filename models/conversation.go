package models

import "time"

const DEFAULT_CONVERSATION_TITLE = "New Conversation"
const CHAT_CONVERSATION_TITLE = "Coach"

// Conversation agrupa as mensagens de um usuário. UpdatedAt avança a cada turno de chat
// e define a ordem de listagem.
type Conversation struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
	Title     string     `gorm:"type:varchar(200);default:'New Conversation'" json:"title"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `gorm:"index" json:"updated_at"`
}

func (conv Conversation) OwnedBy(userID int64) bool {
	return conv.UserID == userID
}
