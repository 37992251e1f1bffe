package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"roomhub/entities"
)

// In-memory implementations of the repository interfaces. They back the unit
// tests so the use cases and handlers can be exercised without Postgres, and
// apply entities.RoomFilter with the same semantics the SQL scope encodes.

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]entities.User
}

func NewUserMemoryRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]entities.User)}
}

func (r *memoryUserRepository) Create(user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Username = entities.NormalizeUsername(user.Username)
	user.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) GetByID(id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[id]; ok {
		return &user, nil
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) GetByUsername(username string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	normalized := entities.NormalizeUsername(username)
	for _, user := range r.users {
		if user.Username == normalized {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

type memoryTopicRepository struct {
	mu     sync.RWMutex
	topics map[string]entities.Topic // keyed by name
}

func NewTopicMemoryRepository() TopicRepository {
	return &memoryTopicRepository{topics: make(map[string]entities.Topic)}
}

func (r *memoryTopicRepository) GetOrCreate(name string) (*entities.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if topic, ok := r.topics[name]; ok {
		return &topic, nil
	}
	topic := entities.Topic{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	r.topics[name] = topic
	return &topic, nil
}

func (r *memoryTopicRepository) GetAll() ([]entities.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topics := make([]entities.Topic, 0, len(r.topics))
	for _, topic := range r.topics {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics, nil
}

type memoryRoomRepository struct {
	mu    sync.RWMutex
	rooms map[string]entities.Room
}

func NewRoomMemoryRepository() RoomRepository {
	return &memoryRoomRepository{rooms: make(map[string]entities.Room)}
}

func (r *memoryRoomRepository) Create(room *entities.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	room.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	room.UpdatedAt = room.CreatedAt
	r.rooms[room.ID] = *room
	return nil
}

func (r *memoryRoomRepository) GetByID(id string) (*entities.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if room, ok := r.rooms[id]; ok {
		return &room, nil
	}
	return nil, ErrNotFound
}

func (r *memoryRoomRepository) List(filter entities.RoomFilter) ([]entities.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var rooms []entities.Room
	for _, room := range r.rooms {
		if filter.Matches(room) {
			rooms = append(rooms, room)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].CreatedAt > rooms[j].CreatedAt })
	return rooms, nil
}

func (r *memoryRoomRepository) Count(filter entities.RoomFilter) (int64, error) {
	rooms, err := r.List(filter)
	return int64(len(rooms)), err
}

func (r *memoryRoomRepository) Update(room *entities.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.rooms[room.ID]
	if !ok {
		return ErrNotFound
	}
	if existing.HostID != room.HostID {
		return ErrHostMismatch
	}
	existing.Name = room.Name
	existing.Description = room.Description
	existing.TopicID = room.TopicID
	existing.Topic = room.Topic
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	r.rooms[room.ID] = existing
	return nil
}

func (r *memoryRoomRepository) Delete(id, hostID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.rooms[id]
	if !ok {
		return ErrNotFound
	}
	if existing.HostID != hostID {
		return ErrHostMismatch
	}
	delete(r.rooms, id)
	return nil
}

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]entities.Session // keyed by token
	users    UserRepository
}

// NewSessionMemoryRepository stores sessions keyed by token. The user
// repository is consulted on reads so GetByToken can populate Session.User
// the way the Postgres preload does.
func NewSessionMemoryRepository(users UserRepository) SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]entities.Session),
		users:    users,
	}
}

func (r *memorySessionRepository) Create(session *entities.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.Token == "" {
		session.Token = uuid.New().String()
	}
	session.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	r.sessions[session.Token] = *session
	return nil
}

func (r *memorySessionRepository) GetByToken(token string) (*entities.Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[token]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if r.users != nil {
		if user, err := r.users.GetByID(session.UserID); err == nil {
			session.User = *user
		}
	}
	return &session, nil
}

func (r *memorySessionRepository) DeleteByToken(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

func (r *memorySessionRepository) DeleteExpired(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for token, session := range r.sessions {
		if session.Expired(now) {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed, nil
}
