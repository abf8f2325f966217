package domain

type MemberID string

type Role string

const (
	RoleDeveloper Role = "developer"
	RoleCoach     Role = "coach"
	RoleTutor     Role = "tutor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDeveloper, RoleCoach, RoleTutor:
		return true
	}
	return false
}

// Member is a student application. TeamID is nil while the application is unallocated.
type Member struct {
	ID          MemberID
	StudentName string
	Role        Role
	TeamID      *TeamID
}

func (m Member) InTeam(teamID TeamID) bool {
	return m.TeamID != nil && *m.TeamID == teamID
}
