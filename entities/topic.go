package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Topic groups rooms by subject. Topics are created on demand the first time
// a room references a new name, so names are unique.
type Topic struct {
	ID        string `gorm:"type:text;primaryKey" json:"id"`
	Name      string `gorm:"unique;not null" json:"name"`
	CreatedAt string `json:"created_at"`
}

func (t *Topic) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return
}
