package interfaces

import (
	"context"

	"github.com/m-mizutani/relpush/pkg/domain/model"
)

// ReleaseResolver defines the release resolution operation: fetch the
// release for a tag if one exists (published or draft), create it
// otherwise.
type ReleaseResolver interface {
	// Resolve returns the release whose tag equals spec.TagName,
	// creating it when neither the tag lookup nor the full listing
	// finds one.
	Resolve(ctx context.Context, repo model.Repo, spec *model.ReleaseSpec) (*model.Release, error)
}

// AssetUploader defines the per-file upload operation against a
// resolved release.
type AssetUploader interface {
	// Upload ensures the named asset exists in the release with the
	// file's bytes, applying the overwrite policy. On a duplicate
	// without overwrite it returns BOTH a result carrying the existing
	// asset's URL and a non-nil error tagged ErrTagDuplicateAsset.
	Upload(ctx context.Context, repo model.Repo, release *model.Release, req *model.UploadRequest) (*model.UploadResult, error)
}
