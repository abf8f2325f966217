package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newMembersCommand(opts *options) *cobra.Command {
	var teamID string

	cmd := &cobra.Command{
		Use:   "members",
		Short: "List applications, optionally only those of one team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.client()
			if err != nil {
				return err
			}

			members, err := cli.Members(cmd.Context(), teamID)
			if err != nil {
				return fmt.Errorf("listing members: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTUDENT\tROLE\tTEAM")
			for _, m := range members {
				team := "-"
				if m.TeamID != nil {
					team = *m.TeamID
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.MemberID, m.StudentName, m.Role, team)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "Only list members of this team")

	return cmd
}
