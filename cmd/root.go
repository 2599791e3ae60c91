// Package cmd provides the command-line interface for relctl.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the relctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "relctl",
		Short: "relctl automates the release of a Maven project",
		Long: `relctl automates the release chores of a Maven project: it keeps the
changelog up to date, derives release and development versions from pom.xml,
and publishes milestones and releases on the issue tracker.

Configuration is read from .relctl.yaml in the working directory and from
environment variables (GITHUB_TOKEN, GITHUB_REPOSITORY, RELCTL_TRACKER, ...).`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	// Add persistent flags that will be available to all commands
	rootCmd.PersistentFlags().StringVar(&a.pomFlag, "pom", "", "Maven descriptor holding the project version (default \"pom.xml\")")
	rootCmd.PersistentFlags().StringVar(&a.changelogFlag, "changelog", "", "Markdown changelog (default \"CHANGES.md\")")
	rootCmd.PersistentFlags().StringVarP(&a.repositoryFlag, "repository", "r", "", "GitHub repository name (e.g., 'owner/repo'), detected from the origin remote when unset")

	rootCmd.AddCommand(
		newNewCmd(a),
		newTimestampCmd(a),
		newLogCmd(a),
		newChangelogCmd(a),
		newMilestoneOpenCmd(a),
		newMilestoneCloseCmd(a),
		newReleaseCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}

// Execute runs the command tree against the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}
