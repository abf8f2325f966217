package allocation

import "team-allocation-service/internal/domain"

// Diff holds the operations needed to turn one membership into another.
type Diff struct {
	ToAdd    []domain.MemberID
	ToRemove []domain.MemberID
}

func (d Diff) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// Compute returns edited minus previous as ToAdd and previous minus edited as
// ToRemove. Duplicate ids are ignored and the input order is kept.
func Compute(previous, edited []domain.MemberID) Diff {
	prevSet := toSet(previous)
	editedSet := toSet(edited)

	return Diff{
		ToAdd:    subtract(edited, prevSet),
		ToRemove: subtract(previous, editedSet),
	}
}

// PreviousMembers returns the ids of members currently assigned to teamID.
func PreviousMembers(members []domain.Member, teamID domain.TeamID) []domain.MemberID {
	ids := []domain.MemberID{}
	for _, member := range members {
		if member.InTeam(teamID) {
			ids = append(ids, member.ID)
		}
	}
	return ids
}

func toSet(ids []domain.MemberID) map[domain.MemberID]struct{} {
	set := make(map[domain.MemberID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func subtract(ids []domain.MemberID, exclude map[domain.MemberID]struct{}) []domain.MemberID {
	out := []domain.MemberID{}
	seen := make(map[domain.MemberID]struct{}, len(ids))
	for _, id := range ids {
		if _, skip := exclude[id]; skip {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
