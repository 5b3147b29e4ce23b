package models

import "time"

// User representa o usuário do sistema. Existe normalmente uma única linha,
// criada no primeiro login.
type User struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Email     *string    `gorm:"type:varchar(255);unique_index" json:"email"`
	CreatedAt *time.Time `json:"created_at"`
}

// All returns every model managed by automigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Preference{},
		&Conversation{},
		&Message{},
	}
}
