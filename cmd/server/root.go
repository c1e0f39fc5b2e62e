package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	internaldb "volunteer-roster/internal/db"
)

var (
	version = "dev"
	commit  = "none"
)

type rootFlags struct {
	envFile string
}

func (f *rootFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.envFile, "env-file", ".env", "dotenv file loaded before the environment (missing file is ignored)")
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var seed bool

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the roster HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags.envFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, cfg.NewLogger(os.Stderr), seed)
		},
	}
	serveCmd.Flags().BoolVar(&seed, "seed", false, "load demo data into an empty store")

	rootCmd := &cobra.Command{
		Use:           "roster-server",
		Short:         "Volunteer roster API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serveCmd.RunE,
	}
	flags.register(rootCmd.PersistentFlags())
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newMigrateCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newMigrateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations to the configured SQL store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags.envFile)
			if err != nil {
				return err
			}
			dialect, err := internaldb.DialectByName(cfg.StoreDriver)
			if err != nil {
				return fmt.Errorf("migrate needs a SQL store: %w", err)
			}
			pools, err := internaldb.Open(cmd.Context(), dialect, cfg.DSN())
			if err != nil {
				return err
			}
			defer pools.Close() //nolint:errcheck

			v, err := internaldb.MigrationVersion(pools.Write, dialect)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %d\n", cfg.StoreDriver, v)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "roster-server %s (%s)\n", version, commit)
		},
	}
}
