package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/relctl/internal/publish"
	"github.com/danielolaszy/relctl/internal/version"
	"github.com/danielolaszy/relctl/pkg/models"
)

func newMilestoneOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "milestone-open [version]",
		Short: "Open the milestone of a version",
		Long: `Create the milestone of the given version on the issue tracker. An
existing milestone is left as is.

Without a version, the next version of the one declared in pom.xml is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.resolveVersion(args, version.Next)
			if err != nil {
				return err
			}

			tracker, err := a.tracker()
			if err != nil {
				return err
			}

			m, err := publish.OpenMilestone(cmd.Context(), tracker, v)
			if err != nil {
				return err
			}

			printMilestone(cmd, m)
			return nil
		},
	}
}

func newMilestoneCloseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "milestone-close [version]",
		Short: "Close the milestone of a version",
		Long: `Close the milestone of the given version on the issue tracker. The
milestone is only closed once none of its issues is open.

Without a version, the release version of the one declared in pom.xml is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.resolveVersion(args, releaseOf)
			if err != nil {
				return err
			}

			tracker, err := a.tracker()
			if err != nil {
				return err
			}

			m, err := publish.CloseMilestone(cmd.Context(), tracker, v)
			if err != nil {
				return err
			}

			printMilestone(cmd, m)
			return nil
		},
	}
}

func printMilestone(cmd *cobra.Command, m *models.Milestone) {
	if m.URL != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", m.Title, m.State, m.URL)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.Title, m.State)
}
