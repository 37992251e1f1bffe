package usecases

import (
	"errors"
	"strings"

	"roomhub/entities"
	"roomhub/repositories"
)

// RoomInput carries the submitted room form fields. The topic is a free name
// and is resolved or created on write.
type RoomInput struct {
	Name        string `form:"name" json:"name"`
	Topic       string `form:"topic" json:"topic"`
	Description string `form:"description" json:"description"`
}

type RoomUseCase struct {
	RoomRepo  repositories.RoomRepository
	TopicRepo repositories.TopicRepository
}

func NewRoomUseCase(roomRepo repositories.RoomRepository, topicRepo repositories.TopicRepository) *RoomUseCase {
	return &RoomUseCase{
		RoomRepo:  roomRepo,
		TopicRepo: topicRepo,
	}
}

// SearchRooms lists the rooms matching an optional free-text term together
// with the matched count. An empty term matches every room.
func (uc *RoomUseCase) SearchRooms(term string) ([]entities.Room, int64, error) {
	filter := entities.RoomFilter{Term: strings.TrimSpace(term)}
	rooms, err := uc.RoomRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	count, err := uc.RoomRepo.Count(filter)
	if err != nil {
		return nil, 0, err
	}
	return rooms, count, nil
}

// GetRoom retrieves a room by ID.
func (uc *RoomUseCase) GetRoom(id string) (*entities.Room, error) {
	if id == "" {
		return nil, ErrRoomNotFound
	}
	room, err := uc.RoomRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// ListTopics returns all topics, for the search sidebar and the room form.
func (uc *RoomUseCase) ListTopics() ([]entities.Topic, error) {
	return uc.TopicRepo.GetAll()
}

// CreateRoom validates the input and persists a new room hosted by host.
// Validation failure writes nothing.
func (uc *RoomUseCase) CreateRoom(host *entities.User, input RoomInput) (*entities.Room, error) {
	if err := validateRoomInput(input); err != nil {
		return nil, err
	}

	topic, err := uc.TopicRepo.GetOrCreate(strings.TrimSpace(input.Topic))
	if err != nil {
		return nil, err
	}

	room := &entities.Room{
		HostID:      host.ID,
		TopicID:     topic.ID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Host:        *host,
		Topic:       *topic,
	}
	if err := uc.RoomRepo.Create(room); err != nil {
		return nil, err
	}
	return room, nil
}

// UpdateRoom overwrites a room's mutable fields. The ownership check runs
// before the input is validated or applied, so a non-host submission is
// denied without any of its data being processed. ID and host are preserved.
func (uc *RoomUseCase) UpdateRoom(host *entities.User, id string, input RoomInput) (*entities.Room, error) {
	room, err := uc.GetRoom(id)
	if err != nil {
		return nil, err
	}
	if room.HostID != host.ID {
		return nil, ErrNotHost
	}

	if err := validateRoomInput(input); err != nil {
		return nil, err
	}

	topic, err := uc.TopicRepo.GetOrCreate(strings.TrimSpace(input.Topic))
	if err != nil {
		return nil, err
	}

	room.Name = strings.TrimSpace(input.Name)
	room.Description = input.Description
	room.TopicID = topic.ID
	room.Topic = *topic

	if err := uc.RoomRepo.Update(room); err != nil {
		return nil, mapRoomWriteError(err)
	}
	return room, nil
}

// DeleteRoom removes a room after the same fetch / not-found / ownership
// sequence as UpdateRoom. The two-step confirmation lives at the HTTP layer;
// by the time this runs the caller has confirmed.
func (uc *RoomUseCase) DeleteRoom(host *entities.User, id string) error {
	room, err := uc.GetRoom(id)
	if err != nil {
		return err
	}
	if room.HostID != host.ID {
		return ErrNotHost
	}

	if err := uc.RoomRepo.Delete(room.ID, host.ID); err != nil {
		return mapRoomWriteError(err)
	}
	return nil
}

func validateRoomInput(input RoomInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return errors.New("room name is required")
	}
	if strings.TrimSpace(input.Topic) == "" {
		return errors.New("topic is required")
	}
	return nil
}

func mapRoomWriteError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrRoomNotFound
	case errors.Is(err, repositories.ErrHostMismatch):
		return ErrNotHost
	default:
		return err
	}
}
