package models

import "time"

/************************************************
/**** MARK: MESSAGE ROLES ****/
/************************************************/
const MESSAGE_ROLE_USER = "user"
const MESSAGE_ROLE_ASSISTANT = "assistant"

// Message é uma fala de um turno. Turnos gravam sempre o par (user, assistant);
// a ordem de leitura é a do ID.
type Message struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ConversationID int64      `gorm:"not null;index" json:"conversation_id"`
	Role           string     `gorm:"type:varchar(20)" json:"role"`
	Content        string     `gorm:"type:text" json:"content"`
	CreatedAt      *time.Time `json:"created_at"`
}
