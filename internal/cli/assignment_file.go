package cli

import (
	"fmt"
	"io"
	"os"

	"team-allocation-service/internal/domain"

	"go.yaml.in/yaml/v3"
)

// assignmentFile is the on-disk form of a transfer list. The transfer command
// writes it and the save command reads it back after editing.
type assignmentFile struct {
	TeamID    string   `yaml:"team_id"`
	Assigned  []string `yaml:"assigned"`
	Available []string `yaml:"available,omitempty"`
}

func (f assignmentFile) toSet() domain.AssignmentSet {
	return domain.AssignmentSet{
		TeamID:    domain.TeamID(f.TeamID),
		Assigned:  toMemberIDs(f.Assigned),
		Available: toMemberIDs(f.Available),
	}
}

func fromSet(set domain.AssignmentSet) assignmentFile {
	return assignmentFile{
		TeamID:    string(set.TeamID),
		Assigned:  fromMemberIDs(set.Assigned),
		Available: fromMemberIDs(set.Available),
	}
}

func readAssignmentFile(path string) (assignmentFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return assignmentFile{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var file assignmentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return assignmentFile{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	seen := map[string]struct{}{}
	for _, id := range file.Assigned {
		seen[id] = struct{}{}
	}
	for _, id := range file.Available {
		if _, dup := seen[id]; dup {
			return assignmentFile{}, fmt.Errorf("parsing %s: member %s is both assigned and available", path, id)
		}
	}

	return file, nil
}

func writeAssignmentFile(w io.Writer, file assignmentFile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("encoding transfer list: %w", err)
	}
	return enc.Close()
}

func toMemberIDs(values []string) []domain.MemberID {
	ids := make([]domain.MemberID, len(values))
	for i, v := range values {
		ids[i] = domain.MemberID(v)
	}
	return ids
}

func fromMemberIDs(ids []domain.MemberID) []string {
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = string(id)
	}
	return values
}
