package domain

// AssignmentSet is the in-progress state of a transfer list. Available and
// Assigned never share an id.
type AssignmentSet struct {
	TeamID    TeamID
	Available []MemberID
	Assigned  []MemberID
}
