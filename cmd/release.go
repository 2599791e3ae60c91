package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/relctl/internal/logging"
	"github.com/danielolaszy/relctl/internal/publish"
	"github.com/danielolaszy/relctl/pkg/models"
)

func newReleaseCmd(a *app) *cobra.Command {
	var (
		draft  bool
		target string
	)

	releaseCmd := &cobra.Command{
		Use:   "release [version]",
		Short: "Publish the GitHub release of a version",
		Long: `Create the GitHub release of the given version, using its changelog
section as release notes. If the release already exists (drafts included),
its notes are refreshed instead.

The release tag is the version prefixed with RELCTL_TAG_PREFIX. When the tag
does not exist yet, GitHub creates it on --target, which defaults to the
commit checked out locally.

Without a version, the release version of the one declared in pom.xml is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.resolveVersion(args, releaseOf)
			if err != nil {
				return err
			}

			notes, err := a.store().Log(v)
			if err != nil {
				return err
			}

			client, err := a.githubClient()
			if err != nil {
				return err
			}

			if target == "" {
				target = a.headCommit()
			}

			r := models.Release{
				Tag:    a.cfg.Project.TagPrefix + v,
				Target: target,
				Name:   v,
				Body:   notes,
				Draft:  draft,
			}
			logging.Debug("publishing release",
				"repository", client.Repository(),
				"tag", r.Tag,
				"target", r.Target,
				"draft", r.Draft)

			published, err := publish.PublishRelease(cmd.Context(), client, r)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), published.URL)
			return nil
		},
	}

	releaseCmd.Flags().BoolVar(&draft, "draft", false, "Keep the release as a draft")
	releaseCmd.Flags().StringVar(&target, "target", "", "Commit or branch to tag when the tag does not exist yet")

	return releaseCmd
}
