package cli

import (
	"fmt"

	"team-allocation-service/internal/allocation"
	"team-allocation-service/internal/domain"

	"github.com/spf13/cobra"
)

func newTransferCommand(opts *options) *cobra.Command {
	var (
		teamID     string
		assign     []string
		release    []string
		assignAll  bool
		releaseAll bool
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Print a team's transfer list as YAML",
		Long: `Print the available and assigned halves of a team's transfer list.

--assign and --release move members between the halves before printing, so the
output can be fed straight into 'allocctl save --file'. --release-all and
--assign-all move every member first; individual moves are applied after them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.client()
			if err != nil {
				return err
			}

			list, err := cli.TransferList(cmd.Context(), teamID)
			if err != nil {
				return fmt.Errorf("loading transfer list for %s: %w", teamID, err)
			}

			state := domain.AssignmentSet{
				TeamID:    domain.TeamID(list.TeamID),
				Available: toMemberIDs(list.Available),
				Assigned:  toMemberIDs(list.Assigned),
			}
			if assignAll && releaseAll {
				return fmt.Errorf("--assign-all and --release-all cannot be combined")
			}
			switch {
			case assignAll:
				state = allocation.Reduce(state, allocation.Action{Kind: allocation.AssignAll})
			case releaseAll:
				state = allocation.Reduce(state, allocation.Action{Kind: allocation.ReleaseAll})
			}
			state = applyMoves(state, assign, release)

			return writeAssignmentFile(cmd.OutOrStdout(), fromSet(state))
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "Team to load")
	cmd.Flags().StringSliceVar(&assign, "assign", nil, "Move these members to the assigned side")
	cmd.Flags().StringSliceVar(&release, "release", nil, "Move these members to the available side")
	cmd.Flags().BoolVar(&assignAll, "assign-all", false, "Move every available member to the assigned side")
	cmd.Flags().BoolVar(&releaseAll, "release-all", false, "Move every assigned member to the available side")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}

func applyMoves(state domain.AssignmentSet, assign, release []string) domain.AssignmentSet {
	if len(assign) > 0 {
		state = allocation.Reduce(state, allocation.Action{Kind: allocation.MoveToAssigned, IDs: toMemberIDs(assign)})
	}
	if len(release) > 0 {
		state = allocation.Reduce(state, allocation.Action{Kind: allocation.MoveToAvailable, IDs: toMemberIDs(release)})
	}
	return state
}
