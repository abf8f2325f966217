package cli

import (
	"fmt"
	"io"
	"strings"

	"team-allocation-service/internal/allocation"
	"team-allocation-service/internal/domain"

	"github.com/spf13/cobra"
)

func newSaveCommand(opts *options) *cobra.Command {
	var (
		teamID string
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Make a team's membership match an edited transfer list",
		Long: `Read an edited transfer list, compare its assigned members with the team's
current members and issue one assign or unassign request per difference.

Requests run in parallel. Failed members are listed and the command exits
with an error; members that were saved stay saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			edited, err := readAssignmentFile(file)
			if err != nil {
				return err
			}
			switch {
			case teamID == "" && edited.TeamID == "":
				return fmt.Errorf("no team given: pass --team or set team_id in %s", file)
			case teamID == "":
				teamID = edited.TeamID
			case edited.TeamID != "" && edited.TeamID != teamID:
				return fmt.Errorf("--team %s does not match team_id %s in %s", teamID, edited.TeamID, file)
			}

			cli, err := opts.client()
			if err != nil {
				return err
			}

			members, err := cli.Members(cmd.Context(), teamID)
			if err != nil {
				return fmt.Errorf("loading members of %s: %w", teamID, err)
			}
			previous := make([]domain.MemberID, len(members))
			for i, m := range members {
				previous[i] = domain.MemberID(m.MemberID)
			}

			out := cmd.OutOrStdout()
			diff := allocation.Compute(previous, edited.toSet().Assigned)
			printDiff(out, teamID, diff)
			if diff.Empty() || dryRun {
				return nil
			}

			reconciler := allocation.NewReconciler(cli, opts.logger(cmd.ErrOrStderr()),
				allocation.WithConcurrency(opts.concurrency()))
			result := reconciler.Apply(cmd.Context(), domain.TeamID(teamID), diff)
			printResult(out, result)

			if err := result.Err(); err != nil {
				return fmt.Errorf("%d of %d requests failed", len(result.Failures), len(diff.ToAdd)+len(diff.ToRemove))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "Team to save (defaults to team_id in the file)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Edited transfer list (YAML)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only print the changes")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func printDiff(w io.Writer, teamID string, diff allocation.Diff) {
	if diff.Empty() {
		fmt.Fprintf(w, "Team %s is already up to date.\n", teamID)
		return
	}
	fmt.Fprintf(w, "Team %s: %d to assign, %d to unassign\n", teamID, len(diff.ToAdd), len(diff.ToRemove))
	for _, id := range diff.ToAdd {
		fmt.Fprintf(w, "  + %s\n", id)
	}
	for _, id := range diff.ToRemove {
		fmt.Fprintf(w, "  - %s\n", id)
	}
}

func printResult(w io.Writer, result allocation.Result) {
	fmt.Fprintf(w, "Assigned: %s\n", joinIDs(result.Added))
	fmt.Fprintf(w, "Unassigned: %s\n", joinIDs(result.Removed))
	for _, f := range result.Failures {
		fmt.Fprintf(w, "Failed %s %s (%s): %v\n", f.Op, f.MemberID, allocation.Outcome(f.Err), f.Err)
	}
}

func joinIDs(ids []domain.MemberID) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(fromMemberIDs(ids), ", ")
}
