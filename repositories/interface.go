package repositories

import (
	"time"

	"roomhub/entities"
)

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id string) (*entities.User, error)
	GetByUsername(username string) (*entities.User, error)
}

type TopicRepository interface {
	GetOrCreate(name string) (*entities.Topic, error)
	GetAll() ([]entities.Topic, error)
}

type RoomRepository interface {
	Create(room *entities.Room) error
	GetByID(id string) (*entities.Room, error)
	List(filter entities.RoomFilter) ([]entities.Room, error)
	Count(filter entities.RoomFilter) (int64, error)
	// Update overwrites the room's mutable fields. The write re-checks inside
	// the same transaction that the stored host still matches room.HostID.
	Update(room *entities.Room) error
	// Delete removes the room only if hostID still owns it.
	Delete(id, hostID string) error
}

type SessionRepository interface {
	Create(session *entities.Session) error
	GetByToken(token string) (*entities.Session, error)
	DeleteByToken(token string) error
	DeleteExpired(now time.Time) (int64, error)
}
