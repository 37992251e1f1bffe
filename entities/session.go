package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session binds a browser-held token to a user until it expires or the user
// logs out. The cookie carries only the token; everything else lives here.
type Session struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt string    `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Token == "" {
		s.Token = uuid.New().String()
	}
	s.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
