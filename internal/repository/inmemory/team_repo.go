package inmemory

import (
	"context"
	"slices"
	"strings"
	"team-allocation-service/internal/domain"
)

type TeamRepo struct {
	db *InMemoryStorage
}

func NewTeamRepo(db *InMemoryStorage) *TeamRepo {
	return &TeamRepo{
		db: db,
	}
}

func (tr *TeamRepo) Create(_ context.Context, team domain.Team) error {
	tr.db.mu.Lock()
	defer tr.db.mu.Unlock()

	if _, exists := tr.db.Teams[team.ID]; exists {
		return domain.ErrTeamExists
	}

	team.Members = nil
	tr.db.Teams[team.ID] = team

	return nil
}

func (tr *TeamRepo) TeamByID(_ context.Context, teamID domain.TeamID) (domain.Team, error) {
	tr.db.mu.RLock()
	defer tr.db.mu.RUnlock()

	team, exists := tr.db.Teams[teamID]
	if !exists {
		return domain.Team{}, domain.ErrNotFound
	}

	team.Members = membersOf(tr.db, teamID)

	return team, nil
}

func (tr *TeamRepo) List(_ context.Context) ([]domain.Team, error) {
	tr.db.mu.RLock()
	defer tr.db.mu.RUnlock()

	teams := make([]domain.Team, 0, len(tr.db.Teams))
	for _, team := range tr.db.Teams {
		team.Members = membersOf(tr.db, team.ID)
		teams = append(teams, team)
	}

	slices.SortFunc(teams, func(a, b domain.Team) int {
		return strings.Compare(a.Name, b.Name)
	})

	return teams, nil
}

// membersOf expects the caller to hold the storage lock.
func membersOf(db *InMemoryStorage, teamID domain.TeamID) []domain.Member {
	members := []domain.Member{}
	for _, member := range db.Members {
		if member.InTeam(teamID) {
			members = append(members, cloneMember(member))
		}
	}

	slices.SortFunc(members, compareMembers)

	return members
}

func compareMembers(a, b domain.Member) int {
	return strings.Compare(string(a.ID), string(b.ID))
}
