package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roomhub/db"
	"roomhub/entities"
)

type roomPgRepository struct {
	db db.Database
}

func NewRoomPgRepository(database db.Database) RoomRepository {
	return &roomPgRepository{db: database}
}

func (r *roomPgRepository) Create(room *entities.Room) error {
	return r.db.GetDB().Create(room).Error
}

func (r *roomPgRepository) GetByID(id string) (*entities.Room, error) {
	var room entities.Room
	err := r.db.GetDB().Preload("Host").Preload("Topic").Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

// escapeLike neutralizes LIKE metacharacters so the search term matches as a
// literal substring, the same containment entities.RoomFilter.Matches does.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

// scope applies the search filter so List and Count always agree.
func (r *roomPgRepository) scope(filter entities.RoomFilter) *gorm.DB {
	tx := r.db.GetDB().Model(&entities.Room{}).
		Joins("JOIN topics ON topics.id = rooms.topic_id")
	if term := filter.Term; term != "" {
		q := "%" + escapeLike(term) + "%"
		tx = tx.Where("topics.name ILIKE ? OR rooms.name ILIKE ? OR rooms.description ILIKE ?", q, q, q)
	}
	return tx
}

func (r *roomPgRepository) List(filter entities.RoomFilter) ([]entities.Room, error) {
	var rooms []entities.Room
	err := r.scope(filter).
		Preload("Host").Preload("Topic").
		Order("rooms.created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (r *roomPgRepository) Count(filter entities.RoomFilter) (int64, error) {
	var count int64
	err := r.scope(filter).Count(&count).Error
	return count, err
}

// Update rewrites the mutable fields in one transaction. The row is re-read
// with a row lock and the host compared against room.HostID, so an ownership
// check done before calling Update cannot be invalidated by a concurrent
// write.
func (r *roomPgRepository) Update(room *entities.Room) error {
	room.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		var existing entities.Room
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", room.ID).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if existing.HostID != room.HostID {
			return ErrHostMismatch
		}
		return tx.Model(&existing).Updates(map[string]interface{}{
			"name":        room.Name,
			"description": room.Description,
			"topic_id":    room.TopicID,
			"updated_at":  room.UpdatedAt,
		}).Error
	})
}

// Delete removes the room inside a transaction, re-checking that hostID still
// owns it.
func (r *roomPgRepository) Delete(id, hostID string) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		var existing entities.Room
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if existing.HostID != hostID {
			return ErrHostMismatch
		}
		return tx.Delete(&existing).Error
	})
}
