package repository

import (
	"context"
	"team-allocation-service/internal/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, team domain.Team) error
	TeamByID(ctx context.Context, teamID domain.TeamID) (domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
}

type MemberRepository interface {
	Create(ctx context.Context, member domain.Member) error
	MemberByID(ctx context.Context, memberID domain.MemberID) (domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	MembersByTeamID(ctx context.Context, teamID domain.TeamID) ([]domain.Member, error)
	// SetTeam replaces the team reference of a member. A nil teamID detaches it.
	SetTeam(ctx context.Context, memberID domain.MemberID, teamID *domain.TeamID) (domain.Member, error)
	// DetachFromTeam clears the team reference only while it still equals
	// teamID. An unassigned member is returned unchanged with detached=false;
	// a member of another team yields ErrConflict.
	DetachFromTeam(ctx context.Context, memberID domain.MemberID, teamID domain.TeamID) (member domain.Member, detached bool, err error)
}
