package models

import (
	"encoding/json"
	"strings"
)

// Preference guarda o JSON de preferências do usuário (1:1). O conteúdo não tem schema.
type Preference struct {
	ID     int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID int64  `gorm:"not null;unique_index" json:"user_id"`
	Data   string `gorm:"type:text" json:"data"`
}

// PreferenceData is the decoded preference document.
type PreferenceData map[string]any

// Decode returns the stored document, or an empty one when the row is
// missing or the blob is not a JSON object.
func (p *Preference) Decode() PreferenceData {
	if p == nil {
		return PreferenceData{}
	}
	return DecodePreferenceData(p.Data)
}

func DecodePreferenceData(raw string) PreferenceData {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PreferenceData{}
	}
	var out PreferenceData
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return PreferenceData{}
	}
	return out
}

// EncodePreferenceData serialises a document for storage; nil becomes "{}".
func EncodePreferenceData(data PreferenceData) (string, error) {
	if data == nil {
		return "{}", nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
