package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTeamsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List teams and their member counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.client()
			if err != nil {
				return err
			}

			teams, err := cli.Teams(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing teams: %w", err)
			}

			if len(teams) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No teams yet.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMEMBERS")
			for _, team := range teams {
				fmt.Fprintf(w, "%s\t%s\t%d\n", team.TeamID, team.TeamName, len(team.Members))
			}
			return w.Flush()
		},
	}
}

func newTeamCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "team ID",
		Short: "Show one team with its members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.client()
			if err != nil {
				return err
			}

			team, err := cli.Team(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("loading team %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", team.TeamName, team.TeamID)
			if len(team.Members) == 0 {
				fmt.Fprintln(out, "No members.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTUDENT\tROLE")
			for _, m := range team.Members {
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.MemberID, m.StudentName, m.Role)
			}
			return w.Flush()
		},
	}
}
