package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"team-allocation-service/internal/domain"
	"team-allocation-service/internal/repository"

	"github.com/google/uuid"
)

type MemberService struct {
	memberRepo repository.MemberRepository
	logger     *slog.Logger
}

func NewMemberService(mr repository.MemberRepository, logger *slog.Logger) *MemberService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemberService{
		memberRepo: mr,
		logger:     logger,
	}
}

func (s *MemberService) CreateMember(ctx context.Context, member domain.Member) (domain.Member, error) {
	member.StudentName = strings.TrimSpace(member.StudentName)
	if member.StudentName == "" {
		return domain.Member{}, fmt.Errorf("%w: student name is required", domain.ErrInvalidInput)
	}
	if !member.Role.Valid() {
		return domain.Member{}, fmt.Errorf("%w: %q", domain.ErrInvalidRole, member.Role)
	}
	if member.ID == "" {
		member.ID = domain.MemberID(uuid.NewString())
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return domain.Member{}, err
	}

	return member, nil
}

// Members lists every member, or only the members of teamID when it is set.
func (s *MemberService) Members(ctx context.Context, teamID *domain.TeamID) ([]domain.Member, error) {
	if teamID != nil {
		return s.memberRepo.MembersByTeamID(ctx, *teamID)
	}
	return s.memberRepo.List(ctx)
}

// Assign links the member to teamID, replacing any previous team. Both the
// member and the team must exist, even when the member is already linked.
func (s *MemberService) Assign(ctx context.Context, memberID domain.MemberID, teamID domain.TeamID) (domain.Member, error) {
	member, err := s.memberRepo.MemberByID(ctx, memberID)
	if err != nil {
		return domain.Member{}, err
	}

	previous := member.TeamID
	member, err = s.memberRepo.SetTeam(ctx, memberID, &teamID)
	if err != nil {
		return domain.Member{}, err
	}
	if previous != nil && *previous == teamID {
		return member, nil
	}

	attrs := []any{"member_id", memberID, "team_id", teamID}
	if previous != nil {
		attrs = append(attrs, "previous_team_id", *previous)
	}
	s.logger.InfoContext(ctx, "member assigned", attrs...)

	return member, nil
}

// Unassign detaches the member from its team. When teamID is set and the
// member now belongs to a different team, ErrConflict is returned and nothing
// changes. Unassigning an unassigned member is a no-op.
func (s *MemberService) Unassign(ctx context.Context, memberID domain.MemberID, teamID domain.TeamID) (domain.Member, error) {
	if teamID == "" {
		return s.detach(ctx, memberID)
	}

	member, detached, err := s.memberRepo.DetachFromTeam(ctx, memberID, teamID)
	if err != nil {
		return domain.Member{}, err
	}
	if detached {
		s.logger.InfoContext(ctx, "member unassigned", "member_id", memberID, "team_id", teamID)
	}

	return member, nil
}

func (s *MemberService) detach(ctx context.Context, memberID domain.MemberID) (domain.Member, error) {
	member, err := s.memberRepo.MemberByID(ctx, memberID)
	if err != nil {
		return domain.Member{}, err
	}
	if member.TeamID == nil {
		return member, nil
	}

	previous := *member.TeamID
	member, err = s.memberRepo.SetTeam(ctx, memberID, nil)
	if err != nil {
		return domain.Member{}, err
	}

	s.logger.InfoContext(ctx, "member unassigned", "member_id", memberID, "team_id", previous)

	return member, nil
}
