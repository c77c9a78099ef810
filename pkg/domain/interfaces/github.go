package interfaces

import (
	"context"

	"github.com/m-mizutani/relpush/pkg/domain/model"
)

// RegistryClient defines operations for the remote release registry.
// It is injected into the use cases so tests can substitute a
// deterministic in-memory implementation.
type RegistryClient interface {
	// GetReleaseByTag looks up a published release by tag. It returns
	// (nil, nil) when no release has the tag; a non-nil error means the
	// lookup itself failed.
	GetReleaseByTag(ctx context.Context, repo model.Repo, tag string) (*model.Release, error)

	// ListReleases returns all releases known to the registry in its
	// listing order, including unpublished drafts that a tag lookup
	// does not surface.
	ListReleases(ctx context.Context, repo model.Repo) ([]*model.Release, error)

	// CreateRelease creates a new release for the given spec.
	CreateRelease(ctx context.Context, repo model.Repo, spec *model.ReleaseSpec) (*model.Release, error)

	// ListAssets returns all assets attached to a release.
	ListAssets(ctx context.Context, repo model.Repo, releaseID int64) ([]*model.Asset, error)

	// DeleteAsset removes an asset by its id.
	DeleteAsset(ctx context.Context, repo model.Repo, assetID int64) error

	// UploadAsset uploads raw bytes to a release's upload URL under the
	// given name. Content type and length are not parameters by intent:
	// implementations must declare the payload as application/octet-stream
	// with content length len(data), the only shape the uploader produces.
	UploadAsset(ctx context.Context, uploadURL, name string, data []byte) (*model.Asset, error)
}
