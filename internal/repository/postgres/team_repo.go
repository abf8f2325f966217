package postgres

import (
	"context"
	"errors"
	"team-allocation-service/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TeamRepo struct {
	db *pgxpool.Pool
}

func NewTeamRepo(db *pgxpool.Pool) *TeamRepo {
	return &TeamRepo{
		db: db,
	}
}

func (tr *TeamRepo) Create(ctx context.Context, team domain.Team) error {
	createTeamQuery := `INSERT INTO teams (team_id, team_name) VALUES ($1, $2)`

	if _, err := tr.db.Exec(ctx, createTeamQuery, string(team.ID), team.Name); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrTeamExists
		}

		return err
	}

	return nil
}

func (tr *TeamRepo) TeamByID(ctx context.Context, teamID domain.TeamID) (domain.Team, error) {
	teamQuery := `
		SELECT t.team_id, t.team_name, m.member_id, m.student_name, m.role
		FROM teams t
		LEFT JOIN members m ON t.team_id = m.team_id
		WHERE t.team_id = $1
		ORDER BY m.member_id
	`

	teams, err := tr.queryTeams(ctx, teamQuery, string(teamID))
	if err != nil {
		return domain.Team{}, err
	}

	if len(teams) == 0 {
		return domain.Team{}, domain.ErrNotFound
	}

	return teams[0], nil
}

func (tr *TeamRepo) List(ctx context.Context) ([]domain.Team, error) {
	teamsQuery := `
		SELECT t.team_id, t.team_name, m.member_id, m.student_name, m.role
		FROM teams t
		LEFT JOIN members m ON t.team_id = m.team_id
		ORDER BY t.team_name, t.team_id, m.member_id
	`

	return tr.queryTeams(ctx, teamsQuery)
}

// queryTeams folds team/member join rows ordered by team into teams.
func (tr *TeamRepo) queryTeams(ctx context.Context, query string, args ...any) ([]domain.Team, error) {
	rows, err := tr.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []domain.Team{}

	for rows.Next() {
		var (
			teamID      string
			teamName    string
			memberID    *string
			studentName *string
			role        *string
		)

		if err := rows.Scan(&teamID, &teamName, &memberID, &studentName, &role); err != nil {
			return nil, err
		}

		if len(teams) == 0 || teams[len(teams)-1].ID != domain.TeamID(teamID) {
			teams = append(teams, domain.Team{
				ID:      domain.TeamID(teamID),
				Name:    teamName,
				Members: []domain.Member{},
			})
		}

		if memberID == nil {
			continue
		}

		current := &teams[len(teams)-1]
		tid := current.ID
		member := domain.Member{
			ID:     domain.MemberID(*memberID),
			TeamID: &tid,
		}
		if studentName != nil {
			member.StudentName = *studentName
		}
		if role != nil {
			member.Role = domain.Role(*role)
		}
		current.Members = append(current.Members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teams, nil
}
