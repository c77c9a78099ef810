package config

import "github.com/urfave/cli/v3"

// Upload holds release and asset upload configuration
type Upload struct {
	File        string
	Glob        bool
	Tag         string
	Repo        string
	Overwrite   bool
	Prerelease  bool
	ReleaseName string
	Body        string
	AssetName   string
}

// Flags returns CLI flags for upload configuration
func (c *Upload) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "File to upload, or a glob pattern with --glob",
			Required:    true,
			Destination: &c.File,
			Sources:     cli.EnvVars("RELPUSH_FILE"),
		},
		&cli.BoolFlag{
			Name:        "glob",
			Usage:       "Treat --file as a glob pattern",
			Destination: &c.Glob,
			Sources:     cli.EnvVars("RELPUSH_GLOB"),
		},
		&cli.StringFlag{
			Name:        "tag",
			Usage:       "Release tag (refs/tags/ and refs/heads/ prefixes are stripped)",
			Destination: &c.Tag,
			Sources:     cli.EnvVars("GITHUB_REF", "RELPUSH_TAG"),
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Target repository as owner/name (defaults to the current repository)",
			Destination: &c.Repo,
			Sources:     cli.EnvVars("GITHUB_REPOSITORY", "RELPUSH_REPO"),
		},
		&cli.BoolFlag{
			Name:        "overwrite",
			Usage:       "Replace a same-named asset instead of refusing",
			Destination: &c.Overwrite,
			Sources:     cli.EnvVars("RELPUSH_OVERWRITE"),
		},
		&cli.BoolFlag{
			Name:        "prerelease",
			Usage:       "Mark a newly created release as a prerelease",
			Destination: &c.Prerelease,
			Sources:     cli.EnvVars("RELPUSH_PRERELEASE"),
		},
		&cli.StringFlag{
			Name:        "release-name",
			Usage:       "Display name for a newly created release",
			Destination: &c.ReleaseName,
			Sources:     cli.EnvVars("RELPUSH_RELEASE_NAME"),
		},
		&cli.StringFlag{
			Name:        "body",
			Usage:       "Body text for a newly created release",
			Destination: &c.Body,
			Sources:     cli.EnvVars("RELPUSH_BODY"),
		},
		&cli.StringFlag{
			Name:        "asset-name",
			Usage:       "Asset name template; $tag expands to the tag (ignored with --glob)",
			Destination: &c.AssetName,
			Sources:     cli.EnvVars("RELPUSH_ASSET_NAME"),
		},
	}
}
