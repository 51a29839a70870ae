package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"bylines/app/models"
)

// TopicSource supplies the subject for one generation run.
type TopicSource interface {
	Random(ctx context.Context) (models.Topic, error)
}

var defaultTopics = []string{
	"artificial intelligence",
	"quantum computing",
	"cybersecurity",
	"open source software",
	"cloud infrastructure",
	"programming languages",
	"developer productivity",
	"robotics",
	"data privacy",
	"wearable technology",
}

// StaticTopicSource picks uniformly from a fixed topic list. It stands in
// for an external topic feed, which only needs to return a title on demand.
type StaticTopicSource struct {
	topics []string
	mutex  sync.Mutex
	rand   *rand.Rand
}

// NewStaticTopicSource creates a source over the given titles, falling back
// to a built-in technology list when none are given.
func NewStaticTopicSource(topics []string) *StaticTopicSource {
	if len(topics) == 0 {
		topics = defaultTopics
	}
	return &StaticTopicSource{
		topics: topics,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Random returns one topic.
func (s *StaticTopicSource) Random(ctx context.Context) (models.Topic, error) {
	s.mutex.Lock()
	index := s.rand.Intn(len(s.topics))
	s.mutex.Unlock()
	return models.Topic{Title: s.topics[index]}, nil
}
