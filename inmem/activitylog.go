package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/edikoyo/jamhub"
)

type ActivityStore struct {
	lastId int64
	logs   map[jamhub.UserId][]jamhub.ActivityLog
	mutex  sync.RWMutex
}

func NewActivityStore() ActivityStore {
	return ActivityStore{
		logs: make(map[jamhub.UserId][]jamhub.ActivityLog),
	}
}

var _ jamhub.ActivityStore = (*ActivityStore)(nil)

func (s *ActivityStore) AddLog(ctx context.Context, userId jamhub.UserId, activity jamhub.Activity) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	ulogs, ok := s.logs[userId]
	if !ok {
		ulogs = make([]jamhub.ActivityLog, 0, 10)
	}
	s.lastId++
	ulogs = append(ulogs, jamhub.ActivityLog{
		Id:        s.lastId,
		CreatedAt: time.Time{},
		UserId:    userId,
		Name:      activity.Name,
		Data:      activity.Data,
	})
	s.logs[userId] = ulogs
	return nil
}

func (s *ActivityStore) ByUserId(ctx context.Context, userId jamhub.UserId) ([]jamhub.ActivityLog, error) {
	s.mutex.RLock()
	logs, ok := s.logs[userId]
	s.mutex.RUnlock()
	if ok {
		return logs, nil
	} else {
		return []jamhub.ActivityLog{}, nil
	}
}
