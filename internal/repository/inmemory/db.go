package inmemory

import (
	"sync"
	"team-allocation-service/internal/domain"
)

type InMemoryStorage struct {
	mu sync.RWMutex

	Members map[domain.MemberID]domain.Member
	Teams   map[domain.TeamID]domain.Team
}

func NewStorage() (*InMemoryStorage, error) {
	return &InMemoryStorage{
		Members: map[domain.MemberID]domain.Member{},
		Teams:   map[domain.TeamID]domain.Team{},
	}, nil
}
