package postgres

import (
	"context"
	"errors"
	"team-allocation-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MemberRepo struct {
	db *pgxpool.Pool
}

func NewMemberRepo(db *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{
		db: db,
	}
}

const memberColumns = `member_id, student_name, role, team_id`

func (mr *MemberRepo) Create(ctx context.Context, member domain.Member) error {
	createMemberQuery := `
		INSERT INTO members (member_id, student_name, role, team_id)
		VALUES ($1, $2, $3, $4)
	`

	_, err := mr.db.Exec(ctx, createMemberQuery,
		string(member.ID),
		member.StudentName,
		string(member.Role),
		teamIDArg(member.TeamID),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case uniqueViolation:
				return domain.ErrMemberExists
			case foreignKeyViolation:
				return domain.ErrNotFound
			}
		}
		return err
	}

	return nil
}

func (mr *MemberRepo) MemberByID(ctx context.Context, memberID domain.MemberID) (domain.Member, error) {
	memberByIDQuery := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1`

	member, err := scanMember(mr.db.QueryRow(ctx, memberByIDQuery, string(memberID)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Member{}, domain.ErrNotFound
		}
		return domain.Member{}, err
	}

	return member, nil
}

func (mr *MemberRepo) List(ctx context.Context) ([]domain.Member, error) {
	listQuery := `SELECT ` + memberColumns + ` FROM members ORDER BY member_id`

	return mr.queryMembers(ctx, listQuery)
}

func (mr *MemberRepo) MembersByTeamID(ctx context.Context, teamID domain.TeamID) ([]domain.Member, error) {
	byTeamQuery := `SELECT ` + memberColumns + ` FROM members WHERE team_id = $1 ORDER BY member_id`

	return mr.queryMembers(ctx, byTeamQuery, string(teamID))
}

func (mr *MemberRepo) SetTeam(ctx context.Context, memberID domain.MemberID, teamID *domain.TeamID) (domain.Member, error) {
	setTeamQuery := `
		UPDATE members
		SET team_id = $2
		WHERE member_id = $1
		RETURNING ` + memberColumns

	member, err := scanMember(mr.db.QueryRow(ctx, setTeamQuery, string(memberID), teamIDArg(teamID)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Member{}, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return domain.Member{}, domain.ErrNotFound
		}
		return domain.Member{}, err
	}

	return member, nil
}

func (mr *MemberRepo) DetachFromTeam(ctx context.Context, memberID domain.MemberID, teamID domain.TeamID) (domain.Member, bool, error) {
	detachQuery := `
		UPDATE members
		SET team_id = NULL
		WHERE member_id = $1 AND team_id = $2
		RETURNING ` + memberColumns

	member, err := scanMember(mr.db.QueryRow(ctx, detachQuery, string(memberID), string(teamID)))
	if err == nil {
		return member, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Member{}, false, err
	}

	// No row matched: the member is missing, unassigned or in another team.
	member, err = mr.MemberByID(ctx, memberID)
	if err != nil {
		return domain.Member{}, false, err
	}
	if member.TeamID == nil {
		return member, false, nil
	}
	return domain.Member{}, false, domain.ErrConflict
}

func (mr *MemberRepo) queryMembers(ctx context.Context, query string, args ...any) ([]domain.Member, error) {
	rows, err := mr.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func scanMember(row pgx.Row) (domain.Member, error) {
	var (
		id          string
		studentName string
		role        string
		teamID      *string
	)

	if err := row.Scan(&id, &studentName, &role, &teamID); err != nil {
		return domain.Member{}, err
	}

	member := domain.Member{
		ID:          domain.MemberID(id),
		StudentName: studentName,
		Role:        domain.Role(role),
	}
	if teamID = nullableTeamID(teamID); teamID != nil {
		tid := domain.TeamID(*teamID)
		member.TeamID = &tid
	}

	return member, nil
}

func teamIDArg(teamID *domain.TeamID) *string {
	if teamID == nil {
		return nil
	}
	id := string(*teamID)
	return nullableTeamID(&id)
}
