package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpush/pkg/domain/interfaces"
	githubinfra "github.com/m-mizutani/relpush/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API authentication and endpoint configuration.
// Either a personal access token or GitHub App credentials must be
// provided.
type GitHub struct {
	Token          string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
	BaseURL        string
	UploadBaseURL  string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Aliases:     []string{"t"},
			Usage:       "GitHub API token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("GITHUB_TOKEN", "RELPUSH_GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "app-id",
			Usage:       "GitHub App ID (alternative to --token)",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("RELPUSH_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("RELPUSH_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "private-key",
			Usage:       "Path to the GitHub App private key",
			Destination: &c.PrivateKeyPath,
			Sources:     cli.EnvVars("RELPUSH_GITHUB_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("RELPUSH_GITHUB_API_URL"),
		},
		&cli.StringFlag{
			Name:        "upload-url",
			Usage:       "GitHub upload base URL (for GitHub Enterprise)",
			Destination: &c.UploadBaseURL,
			Sources:     cli.EnvVars("RELPUSH_GITHUB_UPLOAD_URL"),
		},
	}
}

// NewClient builds a registry client from the configured credentials.
func (c *GitHub) NewClient() (interfaces.RegistryClient, error) {
	var opts []githubinfra.Option
	if c.BaseURL != "" {
		uploadURL := c.UploadBaseURL
		if uploadURL == "" {
			uploadURL = c.BaseURL
		}
		opts = append(opts, githubinfra.WithBaseURL(c.BaseURL, uploadURL))
	}

	switch {
	case c.Token != "":
		return githubinfra.NewClient(c.Token, opts...)

	case c.AppID != 0 && c.InstallationID != 0 && c.PrivateKeyPath != "":
		privateKey, err := os.ReadFile(c.PrivateKeyPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read GitHub App private key",
				goerr.V("path", c.PrivateKeyPath),
			)
		}
		return githubinfra.NewAppClient(c.AppID, c.InstallationID, privateKey, opts...)

	default:
		return nil, goerr.New("GitHub credentials required: set --token or App credentials")
	}
}
