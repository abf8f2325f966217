package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"team-allocation-service/internal/allocation"
	"team-allocation-service/internal/client"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "ALLOCCTL"

// options are resolved from flags, ALLOCCTL_* variables and an optional
// config file, in that order of precedence.
type options struct {
	v *viper.Viper
}

func (o *options) apiURL() string   { return o.v.GetString("api-url") }
func (o *options) token() string    { return o.v.GetString("token") }
func (o *options) concurrency() int { return o.v.GetInt("concurrency") }
func (o *options) verbose() bool    { return o.v.GetBool("verbose") }

func (o *options) client() (*client.Client, error) {
	cli, err := client.New(o.apiURL(), client.WithToken(o.token()))
	if err != nil {
		return nil, fmt.Errorf("creating api client: %w", err)
	}
	return cli, nil
}

func (o *options) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewRootCommand builds the allocctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{v: viper.New()}
	var configFile string

	root := &cobra.Command{
		Use:   "allocctl",
		Short: "Manage project team allocations",
		Long: `allocctl inspects teams and applications on the allocation API and saves
edited team memberships by issuing only the assign and unassign requests
needed to reach the edited state.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.v.SetEnvPrefix(envPrefix)
			opts.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			opts.v.AutomaticEnv()

			if configFile != "" {
				opts.v.SetConfigFile(configFile)
				if err := opts.v.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config %s: %w", configFile, err)
				}
			}

			return opts.v.BindPFlags(cmd.Flags())
		},
	}

	flags := root.PersistentFlags()
	flags.String("api-url", "http://localhost:8080", "Base URL of the allocation API")
	flags.String("token", "", "Bearer token sent to the API")
	flags.Int("concurrency", allocation.DefaultConcurrency, "Maximum parallel assign/unassign requests")
	flags.BoolP("verbose", "v", false, "Log every request outcome")
	flags.StringVar(&configFile, "config", "", "Path to a YAML config file")

	root.AddCommand(
		newTeamsCommand(opts),
		newTeamCommand(opts),
		newMembersCommand(opts),
		newTransferCommand(opts),
		newSaveCommand(opts),
	)

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
