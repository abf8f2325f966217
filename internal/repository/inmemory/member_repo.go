package inmemory

import (
	"context"
	"slices"
	"team-allocation-service/internal/domain"
)

type MemberRepo struct {
	db *InMemoryStorage
}

func NewMemberRepo(db *InMemoryStorage) *MemberRepo {
	return &MemberRepo{
		db: db,
	}
}

func (mr *MemberRepo) Create(_ context.Context, member domain.Member) error {
	mr.db.mu.Lock()
	defer mr.db.mu.Unlock()

	if _, exists := mr.db.Members[member.ID]; exists {
		return domain.ErrMemberExists
	}
	if member.TeamID != nil {
		if _, exists := mr.db.Teams[*member.TeamID]; !exists {
			return domain.ErrNotFound
		}
	}

	mr.db.Members[member.ID] = cloneMember(member)

	return nil
}

func (mr *MemberRepo) MemberByID(_ context.Context, memberID domain.MemberID) (domain.Member, error) {
	mr.db.mu.RLock()
	defer mr.db.mu.RUnlock()

	member, exists := mr.db.Members[memberID]
	if !exists {
		return domain.Member{}, domain.ErrNotFound
	}

	return cloneMember(member), nil
}

func (mr *MemberRepo) List(_ context.Context) ([]domain.Member, error) {
	mr.db.mu.RLock()
	defer mr.db.mu.RUnlock()

	members := make([]domain.Member, 0, len(mr.db.Members))
	for _, member := range mr.db.Members {
		members = append(members, cloneMember(member))
	}

	slices.SortFunc(members, compareMembers)

	return members, nil
}

func (mr *MemberRepo) MembersByTeamID(_ context.Context, teamID domain.TeamID) ([]domain.Member, error) {
	mr.db.mu.RLock()
	defer mr.db.mu.RUnlock()

	return membersOf(mr.db, teamID), nil
}

func (mr *MemberRepo) SetTeam(_ context.Context, memberID domain.MemberID, teamID *domain.TeamID) (domain.Member, error) {
	mr.db.mu.Lock()
	defer mr.db.mu.Unlock()

	member, exists := mr.db.Members[memberID]
	if !exists {
		return domain.Member{}, domain.ErrNotFound
	}
	if teamID != nil {
		if _, exists := mr.db.Teams[*teamID]; !exists {
			return domain.Member{}, domain.ErrNotFound
		}
	}

	member.TeamID = nil
	if teamID != nil {
		id := *teamID
		member.TeamID = &id
	}
	mr.db.Members[memberID] = member

	return cloneMember(member), nil
}

func (mr *MemberRepo) DetachFromTeam(_ context.Context, memberID domain.MemberID, teamID domain.TeamID) (domain.Member, bool, error) {
	mr.db.mu.Lock()
	defer mr.db.mu.Unlock()

	member, exists := mr.db.Members[memberID]
	if !exists {
		return domain.Member{}, false, domain.ErrNotFound
	}
	if member.TeamID == nil {
		return cloneMember(member), false, nil
	}
	if !member.InTeam(teamID) {
		return domain.Member{}, false, domain.ErrConflict
	}

	member.TeamID = nil
	mr.db.Members[memberID] = member

	return cloneMember(member), true, nil
}

func cloneMember(member domain.Member) domain.Member {
	if member.TeamID != nil {
		id := *member.TeamID
		member.TeamID = &id
	}
	return member
}
