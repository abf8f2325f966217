package service

import (
	"context"
	"errors"
	"log/slog"
	"team-allocation-service/internal/allocation"
	"team-allocation-service/internal/domain"
	"team-allocation-service/internal/repository"
)

type AllocationService struct {
	teamRepo   repository.TeamRepository
	memberRepo repository.MemberRepository
	reconciler *allocation.Reconciler
}

func NewAllocationService(tr repository.TeamRepository, mr repository.MemberRepository, ms *MemberService, logger *slog.Logger, opts ...allocation.Option) *AllocationService {
	return &AllocationService{
		teamRepo:   tr,
		memberRepo: mr,
		reconciler: allocation.NewReconciler(memberAssigner{members: ms}, logger, opts...),
	}
}

// TransferList returns the starting state of a membership edit for teamID.
func (s *AllocationService) TransferList(ctx context.Context, teamID domain.TeamID) (domain.AssignmentSet, error) {
	if _, err := s.teamRepo.TeamByID(ctx, teamID); err != nil {
		return domain.AssignmentSet{}, err
	}

	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return domain.AssignmentSet{}, err
	}

	return allocation.NewAssignmentSet(members, teamID), nil
}

// SaveTeamMembers makes assigned the membership of teamID. The returned error
// only covers loading state; per-member failures are in the result.
func (s *AllocationService) SaveTeamMembers(ctx context.Context, teamID domain.TeamID, assigned []domain.MemberID) (allocation.Result, error) {
	if _, err := s.teamRepo.TeamByID(ctx, teamID); err != nil {
		return allocation.Result{}, err
	}

	current, err := s.memberRepo.MembersByTeamID(ctx, teamID)
	if err != nil {
		return allocation.Result{}, err
	}

	previous := allocation.PreviousMembers(current, teamID)

	return s.reconciler.Reconcile(ctx, teamID, previous, assigned), nil
}

// memberAssigner runs reconciliation requests against local storage.
type memberAssigner struct {
	members *MemberService
}

func (a memberAssigner) Assign(ctx context.Context, memberID domain.MemberID, teamID domain.TeamID) error {
	_, err := a.members.Assign(ctx, memberID, teamID)
	return classify(memberID, err)
}

func (a memberAssigner) Unassign(ctx context.Context, memberID domain.MemberID, teamID domain.TeamID) error {
	_, err := a.members.Unassign(ctx, memberID, teamID)
	return classify(memberID, err)
}

func classify(memberID domain.MemberID, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return &allocation.NotFoundError{MemberID: memberID, Err: err}
	case errors.Is(err, domain.ErrConflict):
		return &allocation.ConflictError{MemberID: memberID, Err: err}
	default:
		return err
	}
}
