package allocation

import "team-allocation-service/internal/domain"

type ActionKind int

const (
	MoveToAssigned ActionKind = iota
	MoveToAvailable
	AssignAll
	ReleaseAll
)

// Action is a single user command on a transfer list. IDs is ignored by
// AssignAll and ReleaseAll.
type Action struct {
	Kind ActionKind
	IDs  []domain.MemberID
}

// NewAssignmentSet builds the initial transfer list for teamID: its members
// are assigned, every other member is available.
func NewAssignmentSet(members []domain.Member, teamID domain.TeamID) domain.AssignmentSet {
	set := domain.AssignmentSet{
		TeamID:    teamID,
		Available: []domain.MemberID{},
		Assigned:  []domain.MemberID{},
	}
	for _, member := range members {
		if member.InTeam(teamID) {
			set.Assigned = append(set.Assigned, member.ID)
		} else {
			set.Available = append(set.Available, member.ID)
		}
	}
	return set
}

// Reduce applies action to state and returns the new state. The input is not
// modified and ids that are not on the source side are ignored.
func Reduce(state domain.AssignmentSet, action Action) domain.AssignmentSet {
	next := domain.AssignmentSet{
		TeamID:    state.TeamID,
		Available: append([]domain.MemberID{}, state.Available...),
		Assigned:  append([]domain.MemberID{}, state.Assigned...),
	}

	switch action.Kind {
	case MoveToAssigned:
		next.Available, next.Assigned = move(next.Available, next.Assigned, toSet(action.IDs))
	case MoveToAvailable:
		next.Assigned, next.Available = move(next.Assigned, next.Available, toSet(action.IDs))
	case AssignAll:
		next.Assigned = append(next.Assigned, next.Available...)
		next.Available = []domain.MemberID{}
	case ReleaseAll:
		next.Available = append(next.Available, next.Assigned...)
		next.Assigned = []domain.MemberID{}
	}

	return next
}

func move(from, to []domain.MemberID, ids map[domain.MemberID]struct{}) ([]domain.MemberID, []domain.MemberID) {
	kept := make([]domain.MemberID, 0, len(from))
	for _, id := range from {
		if _, ok := ids[id]; ok {
			to = append(to, id)
			continue
		}
		kept = append(kept, id)
	}
	return kept, to
}
