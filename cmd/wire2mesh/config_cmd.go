package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/wire2mesh/internal/config"
)

func configCmd(g *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Manage the wire2mesh config file",
	}
	c.AddCommand(configInitCmd())
	c.AddCommand(configShowCmd(g))
	return c
}

func configInitCmd() *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(config.ConfigDir(), config.FileName)
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := config.Default().SaveTo(path); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return c
}

func configShowCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config (defaults < file < flags)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.Flags{
				ConfigPath: g.configPath,
				Debug:      g.debug,
				Quiet:      g.quiet,
				LogFile:    g.logFile,
			})
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
