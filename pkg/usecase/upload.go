package usecase

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpush/pkg/domain/interfaces"
	"github.com/m-mizutani/relpush/pkg/domain/model"
	"github.com/m-mizutani/relpush/pkg/domain/types"
)

type assetUploader struct {
	client interfaces.RegistryClient
}

// NewUploader creates a new instance of AssetUploader
func NewUploader(client interfaces.RegistryClient) interfaces.AssetUploader {
	return &assetUploader{
		client: client,
	}
}

// Upload ensures req.AssetName exists in the release with the file's
// bytes. Non-regular files (directories matched by a glob) are skipped
// without any registry call. The file is read eagerly so a local read
// failure surfaces before any remote mutation.
func (uc *assetUploader) Upload(ctx context.Context, repo model.Repo, release *model.Release, req *model.UploadRequest) (*model.UploadResult, error) {
	logger := ctxlog.From(ctx)

	info, err := os.Stat(req.FilePath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stat file",
			goerr.V("path", req.FilePath),
			goerr.T(types.ErrTagUpload),
		)
	}
	if !info.Mode().IsRegular() {
		logger.Info("Skipping non-file path",
			"path", req.FilePath,
		)
		return &model.UploadResult{AssetName: req.AssetName, Skipped: true}, nil
	}

	data, err := os.ReadFile(req.FilePath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read file",
			goerr.V("path", req.FilePath),
			goerr.T(types.ErrTagUpload),
		)
	}

	assets, err := uc.client.ListAssets(ctx, repo, release.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assets",
			goerr.V("repo", repo.String()),
			goerr.V("release_id", release.ID),
			goerr.T(types.ErrTagUpload),
		)
	}

	byName := make(map[string]*model.Asset, len(assets))
	for _, a := range assets {
		byName[a.Name] = a
	}

	if existing, ok := byName[req.AssetName]; ok {
		if !req.Overwrite {
			// The existing URL is still reported so callers can observe
			// what is already live, even though the run is marked failed.
			return &model.UploadResult{
					AssetName: req.AssetName,
					URL:       existing.DownloadURL,
				}, goerr.New("asset already exists",
					goerr.V("asset", req.AssetName),
					goerr.V("asset_id", existing.ID),
					goerr.T(types.ErrTagDuplicateAsset),
				)
		}

		logger.Info("Deleting existing asset before overwrite",
			"asset", req.AssetName,
			"asset_id", existing.ID,
		)
		if err := uc.client.DeleteAsset(ctx, repo, existing.ID); err != nil {
			return nil, goerr.Wrap(err, "failed to delete existing asset",
				goerr.V("asset", req.AssetName),
				goerr.V("asset_id", existing.ID),
				goerr.T(types.ErrTagUpload),
			)
		}
	}

	uploaded, err := uc.client.UploadAsset(ctx, release.UploadURL, req.AssetName, data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload asset",
			goerr.V("asset", req.AssetName),
			goerr.V("size_bytes", len(data)),
			goerr.T(types.ErrTagUpload),
		)
	}

	logger.Info("Uploaded asset",
		"asset", uploaded.Name,
		"size_bytes", len(data),
		"url", uploaded.DownloadURL,
	)
	return &model.UploadResult{
		AssetName: uploaded.Name,
		URL:       uploaded.DownloadURL,
	}, nil
}
