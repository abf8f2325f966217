package service

import (
	"context"
	"fmt"
	"strings"
	"team-allocation-service/internal/domain"
	"team-allocation-service/internal/repository"

	"github.com/google/uuid"
)

type TeamService struct {
	teamRepo repository.TeamRepository
}

func NewTeamService(tr repository.TeamRepository) *TeamService {
	return &TeamService{
		teamRepo: tr,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error) {
	team.Name = strings.TrimSpace(team.Name)
	if team.Name == "" {
		return domain.Team{}, fmt.Errorf("%w: team name is required", domain.ErrInvalidInput)
	}
	if team.ID == "" {
		team.ID = domain.TeamID(uuid.NewString())
	}
	team.Members = []domain.Member{}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return domain.Team{}, err
	}

	return team, nil
}

func (s *TeamService) Team(ctx context.Context, teamID domain.TeamID) (domain.Team, error) {
	return s.teamRepo.TeamByID(ctx, teamID)
}

func (s *TeamService) Teams(ctx context.Context) ([]domain.Team, error) {
	return s.teamRepo.List(ctx)
}
