package repositories

import (
	"roomhub/db"
	"roomhub/entities"
)

type topicPgRepository struct {
	db db.Database
}

func NewTopicPgRepository(database db.Database) TopicRepository {
	return &topicPgRepository{db: database}
}

func (r *topicPgRepository) GetOrCreate(name string) (*entities.Topic, error) {
	var topic entities.Topic
	err := r.db.GetDB().Where(entities.Topic{Name: name}).FirstOrCreate(&topic).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *topicPgRepository) GetAll() ([]entities.Topic, error) {
	var topics []entities.Topic
	err := r.db.GetDB().Order("name ASC").Find(&topics).Error
	return topics, err
}
