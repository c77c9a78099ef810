package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpush/pkg/cli/config"
	"github.com/m-mizutani/relpush/pkg/domain/model"
	"github.com/m-mizutani/relpush/pkg/domain/types"
	"github.com/m-mizutani/relpush/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdUpload() *cli.Command {
	var (
		githubCfg  config.GitHub
		uploadCfg  config.Upload
		configPath string
	)

	flags := append(uploadCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "TOML file providing defaults for upload options",
		Destination: &configPath,
		Sources:     cli.EnvVars("RELPUSH_CONFIG"),
	})

	return &cli.Command{
		Name:    "upload",
		Aliases: []string{"u"},
		Usage:   "Ensure a release exists for a tag and upload files to it",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if configPath != "" {
				file, err := config.LoadFile(configPath)
				if err != nil {
					return err
				}
				file.Apply(c.IsSet, &uploadCfg)
			}

			// Validate identity and tag before any network activity.
			if uploadCfg.Repo == "" {
				return goerr.New("repository required: set --repo or GITHUB_REPOSITORY",
					goerr.T(types.ErrTagBadInput))
			}
			repo, err := model.ParseRepo(uploadCfg.Repo)
			if err != nil {
				return err
			}

			tag := model.NormalizeTag(uploadCfg.Tag)
			if tag == "" {
				return goerr.New("tag required: set --tag or GITHUB_REF",
					goerr.T(types.ErrTagBadInput))
			}

			files := []string{uploadCfg.File}
			if uploadCfg.Glob {
				matches, err := filepath.Glob(uploadCfg.File)
				if err != nil {
					return goerr.Wrap(err, "invalid glob pattern",
						goerr.V("pattern", uploadCfg.File),
						goerr.T(types.ErrTagBadInput),
					)
				}
				if len(matches) == 0 {
					return goerr.New("no files matching pattern",
						goerr.V("pattern", uploadCfg.File),
						goerr.T(types.ErrTagBadInput),
					)
				}
				files = matches
			}

			client, err := githubCfg.NewClient()
			if err != nil {
				return err
			}

			resolver := usecase.NewResolver(client)
			uploader := usecase.NewUploader(client)

			release, err := resolver.Resolve(ctx, repo, &model.ReleaseSpec{
				TagName:    tag,
				Name:       uploadCfg.ReleaseName,
				Body:       uploadCfg.Body,
				Prerelease: uploadCfg.Prerelease,
			})
			if err != nil {
				return err
			}

			// Files are processed strictly sequentially. A failure on one
			// file is remembered but does not prevent the rest; the most
			// recent failure becomes the run's error.
			urlOut := color.New(color.FgCyan)
			var runErr error
			for _, path := range files {
				name := filepath.Base(path)
				if uploadCfg.AssetName != "" && !uploadCfg.Glob {
					name = model.RenderAssetName(uploadCfg.AssetName, tag)
				}

				result, err := uploader.Upload(ctx, repo, release, &model.UploadRequest{
					FilePath:  path,
					AssetName: name,
					Overwrite: uploadCfg.Overwrite,
				})
				if err != nil {
					runErr = err
					if goerr.HasTag(err, types.ErrTagDuplicateAsset) {
						logger.Warn("Asset already exists, not uploading",
							"asset", name,
							"path", path,
						)
					} else {
						logger.Error("Failed to upload file",
							"path", path,
							"error", err,
						)
						continue
					}
				}

				if result != nil && result.URL != "" {
					if _, err := urlOut.Fprintln(os.Stdout, result.URL); err != nil {
						return goerr.Wrap(err, "failed to write result")
					}
				}
			}

			return runErr
		},
	}
}
