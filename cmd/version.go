package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/danielolaszy/relctl/internal/version"
)

// versions is the yaml view of the project version.
type versions struct {
	Current string `yaml:"current"`
	Release string `yaml:"release"`
	Next    string `yaml:"next"`
}

func newVersionCmd(a *app) *cobra.Command {
	var (
		snapshot bool
		output   string
	)

	versionCmd := &cobra.Command{
		Use:   "version [current|release|next]",
		Short: "Print the project version",
		Long: `Print the version declared in pom.xml ('current', the default), the
version it will be released as ('release') or the version that follows it
('next').

With --output yaml, the three of them are printed at once.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"current", "release", "next"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "text" && output != "yaml" {
				return fmt.Errorf("unsupported output format %q (want text or yaml)", output)
			}

			current, err := version.Parse(a.cfg.Project.POM)
			if err != nil {
				return err
			}

			which := "current"
			if len(args) > 0 {
				which = args[0]
			}

			// Only the next version requires a numeric last component.
			nextOf := func() (string, error) {
				next, err := version.Next(current)
				if err != nil {
					return "", err
				}
				if snapshot {
					next = version.Snapshot(next)
				}
				return next, nil
			}

			if output == "yaml" {
				next, err := nextOf()
				if err != nil {
					return err
				}
				out, err := yaml.Marshal(versions{
					Current: current,
					Release: version.ToRelease(current),
					Next:    next,
				})
				if err != nil {
					return fmt.Errorf("failed to encode versions: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			switch which {
			case "release":
				fmt.Fprintln(cmd.OutOrStdout(), version.ToRelease(current))
			case "next":
				next, err := nextOf()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), next)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), current)
			}
			return nil
		},
	}

	versionCmd.Flags().BoolVar(&snapshot, "snapshot", false, "Print the next version as a development version")
	versionCmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text or yaml)")

	return versionCmd
}
