// Package allocation reconciles team membership edits.
//
// An edit session starts from the persisted membership of a team, moves
// members between the available and assigned halves of a transfer list, and
// ends with a save. Saving computes the difference between the persisted and
// the edited membership and turns it into independent assign and unassign
// requests against an Assigner. Partial failure is reported per member and
// never rolled back.
package allocation
