package main

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dkoosis/chasten/internal/logging"
	"github.com/dkoosis/chasten/pkg/config"
	"github.com/dkoosis/chasten/pkg/schema"
	"github.com/dkoosis/chasten/pkg/source"
)

var (
	//go:embed templates/config.yml
	starterConfig []byte
	//go:embed templates/checks.yml
	starterChecks []byte
)

func newConfigureCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Validate or create the chasten configuration",
	}
	cmd.AddCommand(newConfigureValidateCmd(a))
	cmd.AddCommand(newConfigureCreateCmd(a))
	return cmd
}

func newConfigureValidateCmd(a *app) *cobra.Command {
	var location, level, dest string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Resolve the configuration and every checks file it references",
		Args:  argsExactly(0, "no arguments"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			closeLog, err := a.initLogging(level, dest)
			if err != nil {
				return err
			}
			defer closeLog() //nolint:errcheck

			resolver, err := config.NewResolver(logging.New("config"))
			if err != nil {
				return err
			}
			resolver.Discover = a.discover
			res, err := resolver.Resolve(cmd.Context(), config.Location(location))
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			fmt.Fprintf(a.stdout, "configuration %s is valid\n", res.Location)
			fmt.Fprintf(a.stdout, "  %d checks file(s), %d check(s)\n", len(res.ChecksFiles), len(res.Checks))
			for _, c := range res.Checks {
				fmt.Fprintf(a.stdout, "  %-8s %-32s %s\n", c.ID, c.Name, c.Code)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&location, "config", "", "Config directory, file, or URL (default: $"+config.EnvConfig+", then the user config directory)")
	addDebugFlags(cmd.Flags(), &level, &dest)
	return cmd
}

func newConfigureCreateCmd(a *app) *cobra.Command {
	var dir string
	var force bool
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write a starter config.yml and checks.yml",
		Args:  argsExactly(0, "no arguments"),
		RunE: func(_ *cobra.Command, _ []string) error {
			if dir == "" {
				d, err := a.discover()
				if err != nil {
					return err
				}
				dir = d
			}
			paths, err := writeStarter(dir, force)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintf(a.stdout, "created %s\n", p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "directory", "", "Target directory (default: the user config directory)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}

var errExists = errors.New("already exists (use --force to overwrite)")

// writeStarter validates the embedded templates and writes them into dir.
func writeStarter(dir string, force bool) ([]string, error) {
	files := []struct {
		name string
		data []byte
		kind schema.Kind
	}{
		{config.DefaultConfigFile, starterConfig, schema.Config},
		{config.DefaultChecksFile, starterChecks, schema.Checks},
	}

	for _, f := range files {
		tree, err := source.Parse(f.data)
		if err != nil {
			return nil, fmt.Errorf("starter %s: %w", f.name, err)
		}
		if err := schema.Validate(tree, f.kind); err != nil {
			return nil, fmt.Errorf("starter %s: %w", f.name, err)
		}
		if !force {
			if _, err := os.Stat(filepath.Join(dir, f.name)); err == nil {
				return nil, fmt.Errorf("%s %w", filepath.Join(dir, f.name), errExists)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		p := filepath.Join(dir, f.name)
		if err := os.WriteFile(p, f.data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
