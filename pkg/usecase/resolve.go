package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpush/pkg/domain/interfaces"
	"github.com/m-mizutani/relpush/pkg/domain/model"
	"github.com/m-mizutani/relpush/pkg/domain/types"
)

type releaseResolver struct {
	client interfaces.RegistryClient
}

// NewResolver creates a new instance of ReleaseResolver
func NewResolver(client interfaces.RegistryClient) interfaces.ReleaseResolver {
	return &releaseResolver{
		client: client,
	}
}

// Resolve fetches the release for spec.TagName or creates it.
//
// The steps run in order, each only when the previous one yields no
// match: direct tag lookup, linear scan of the full release listing
// (drafts are only visible here), creation. A differently-tagged
// release found during the scan does not prevent creation; only an
// exact tag match counts.
func (uc *releaseResolver) Resolve(ctx context.Context, repo model.Repo, spec *model.ReleaseSpec) (*model.Release, error) {
	logger := ctxlog.From(ctx)

	release, err := uc.client.GetReleaseByTag(ctx, repo, spec.TagName)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up release by tag",
			goerr.V("repo", repo.String()),
			goerr.V("tag", spec.TagName),
			goerr.T(types.ErrTagLookup),
		)
	}
	if release != nil {
		logger.Info("Found release by tag",
			"repo", repo.String(),
			"tag", spec.TagName,
			"release_id", release.ID,
		)
		return release, nil
	}

	// Draft releases do not surface in tag lookups, only in the full
	// listing.
	releases, err := uc.client.ListReleases(ctx, repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list releases",
			goerr.V("repo", repo.String()),
			goerr.T(types.ErrTagLookup),
		)
	}

	if release := FindReleaseByTag(spec.TagName, releases); release != nil {
		logger.Info("Found release in listing",
			"repo", repo.String(),
			"tag", spec.TagName,
			"release_id", release.ID,
			"draft", release.Draft,
		)
		return release, nil
	}

	created, err := uc.client.CreateRelease(ctx, repo, spec)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create release",
			goerr.V("repo", repo.String()),
			goerr.V("tag", spec.TagName),
			goerr.T(types.ErrTagLookup),
		)
	}

	logger.Info("Created release",
		"repo", repo.String(),
		"tag", spec.TagName,
		"release_id", created.ID,
	)
	return created, nil
}

// FindReleaseByTag returns the first release in listing order whose
// tag equals the requested tag, or nil when none matches. It is kept
// separate from the network calls so the selection logic can be tested
// against synthetic release lists.
func FindReleaseByTag(tag string, releases []*model.Release) *model.Release {
	for _, r := range releases {
		if r.TagName == tag {
			return r
		}
	}
	return nil
}
