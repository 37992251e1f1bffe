package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room is a discussion room. The host is the user who created it and is the
// only identity allowed to update or delete it; HostID never changes after
// creation.
type Room struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	HostID      string         `gorm:"index;not null" json:"host_id"`
	TopicID     string         `gorm:"index;not null" json:"topic_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Host  User  `gorm:"foreignKey:HostID" json:"host"`
	Topic Topic `gorm:"foreignKey:TopicID" json:"topic"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	r.UpdatedAt = r.CreatedAt
	return
}
