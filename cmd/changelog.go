package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/relctl/internal/version"
)

func newNewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new [version]",
		Short: "Add an unreleased section to the changelog",
		Long: `Add a section for the given version on top of the changelog, dated
'soon come' until it is timestamped.

Without a version, the next version of the one declared in pom.xml is used.
The command fails, leaving the changelog untouched, if the version already
has a section.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.resolveVersion(args, version.Next)
			if err != nil {
				return err
			}

			if err := a.store().NewEntry(v, a.milestoneURL(v)); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newTimestampCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "timestamp [version]",
		Short: "Date a changelog section with today's date",
		Long: `Replace the date of the changelog section of the given version with
today's date (e.g. '25 Dec 2024'). The section body is left untouched.

Without a version, the release version of the one declared in pom.xml is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.resolveVersion(args, releaseOf)
			if err != nil {
				return err
			}

			header, err := a.store().Timestamp(v)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), header)
			return nil
		},
	}
}

func newLogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "log <version>",
		Short: "Print the changelog section of a version",
		Long: `Print the body of the changelog section of the given version, as
published in the release notes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.store().Log(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), log)
			return nil
		},
	}
}

func newChangelogCmd(a *app) *cobra.Command {
	changelogCmd := &cobra.Command{
		Use:   "changelog",
		Short: "Inspect the changelog",
	}

	changelogCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the versions documented in the changelog, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			versions, err := a.store().Versions()
			if err != nil {
				return err
			}

			for _, v := range versions {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	})

	return changelogCmd
}
