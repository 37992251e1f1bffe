package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"roomhub/db"
	"roomhub/entities"
)

type sessionPgRepository struct {
	db db.Database
}

func NewSessionPgRepository(database db.Database) SessionRepository {
	return &sessionPgRepository{db: database}
}

func (r *sessionPgRepository) Create(session *entities.Session) error {
	return r.db.GetDB().Create(session).Error
}

func (r *sessionPgRepository) GetByToken(token string) (*entities.Session, error) {
	var session entities.Session
	err := r.db.GetDB().Preload("User").Where("token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionPgRepository) DeleteByToken(token string) error {
	return r.db.GetDB().Where("token = ?", token).Delete(&entities.Session{}).Error
}

func (r *sessionPgRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.GetDB().Where("expires_at <= ?", now).Delete(&entities.Session{})
	return result.RowsAffected, result.Error
}
