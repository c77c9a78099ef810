package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/relpush/pkg/domain/interfaces"
	"github.com/m-mizutani/relpush/pkg/domain/model"
	"golang.org/x/oauth2"
)

type client struct {
	githubClient *github.Client
}

// Option customizes the client after construction.
type Option func(*client) error

// WithBaseURL overrides the API and upload endpoints. Used for GitHub
// Enterprise instances and for tests against local HTTP servers.
func WithBaseURL(apiURL, uploadURL string) Option {
	return func(c *client) error {
		base, err := url.Parse(ensureTrailingSlash(apiURL))
		if err != nil {
			return fmt.Errorf("failed to parse API base URL %s: %w", apiURL, err)
		}
		upload, err := url.Parse(ensureTrailingSlash(uploadURL))
		if err != nil {
			return fmt.Errorf("failed to parse upload base URL %s: %w", uploadURL, err)
		}
		c.githubClient.BaseURL = base
		c.githubClient.UploadURL = upload
		return nil
	}
}

// NewClient creates a new registry client authenticated with a
// personal access token.
func NewClient(token string, opts ...Option) (interfaces.RegistryClient, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)

	return newClient(github.NewClient(httpClient), opts...)
}

// NewAppClient creates a new registry client authenticated as a GitHub
// App installation.
func NewAppClient(appID, installationID int64, privateKey []byte, opts ...Option) (interfaces.RegistryClient, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport: %w", err)
	}

	return newClient(github.NewClient(&http.Client{Transport: itr}), opts...)
}

func newClient(githubClient *github.Client, opts ...Option) (interfaces.RegistryClient, error) {
	c := &client{
		githubClient: githubClient,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// GetReleaseByTag looks up a published release by tag. HTTP 404 is not
// an error; it maps to (nil, nil) so callers can fall back to the full
// listing.
func (c *client) GetReleaseByTag(ctx context.Context, repo model.Repo, tag string) (*model.Release, error) {
	rel, resp, err := c.githubClient.Repositories.GetReleaseByTag(ctx, repo.Owner, repo.Name, tag)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get release by tag %s for %s: %w", tag, repo, err)
	}
	return toRelease(rel), nil
}

// ListReleases returns every release, drafts included, following
// pagination to exhaustion while preserving the listing order.
func (c *client) ListReleases(ctx context.Context, repo model.Repo) ([]*model.Release, error) {
	opt := &github.ListOptions{PerPage: 100}

	var releases []*model.Release
	for {
		page, resp, err := c.githubClient.Repositories.ListReleases(ctx, repo.Owner, repo.Name, opt)
		if err != nil {
			return nil, fmt.Errorf("failed to list releases for %s: %w", repo, err)
		}
		for _, r := range page {
			releases = append(releases, toRelease(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return releases, nil
}

// CreateRelease creates a new release for the given spec.
func (c *client) CreateRelease(ctx context.Context, repo model.Repo, spec *model.ReleaseSpec) (*model.Release, error) {
	release := &github.RepositoryRelease{
		TagName:    github.Ptr(spec.TagName),
		Prerelease: github.Ptr(spec.Prerelease),
	}
	// Leave name and body unset so the registry applies its defaults.
	if spec.Name != "" {
		release.Name = github.Ptr(spec.Name)
	}
	if spec.Body != "" {
		release.Body = github.Ptr(spec.Body)
	}

	created, _, err := c.githubClient.Repositories.CreateRelease(ctx, repo.Owner, repo.Name, release)
	if err != nil {
		return nil, fmt.Errorf("failed to create release %s for %s: %w", spec.TagName, repo, err)
	}
	return toRelease(created), nil
}

// ListAssets returns all assets attached to a release.
func (c *client) ListAssets(ctx context.Context, repo model.Repo, releaseID int64) ([]*model.Asset, error) {
	opt := &github.ListOptions{PerPage: 100}

	var assets []*model.Asset
	for {
		page, resp, err := c.githubClient.Repositories.ListReleaseAssets(ctx, repo.Owner, repo.Name, releaseID, opt)
		if err != nil {
			return nil, fmt.Errorf("failed to list assets of release %d for %s: %w", releaseID, repo, err)
		}
		for _, a := range page {
			assets = append(assets, toAsset(a))
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return assets, nil
}

// DeleteAsset removes an asset by its id.
func (c *client) DeleteAsset(ctx context.Context, repo model.Repo, assetID int64) error {
	if _, err := c.githubClient.Repositories.DeleteReleaseAsset(ctx, repo.Owner, repo.Name, assetID); err != nil {
		return fmt.Errorf("failed to delete asset %d for %s: %w", assetID, repo, err)
	}
	return nil
}

// UploadAsset posts raw bytes to the release's hypermedia upload URL.
// The URL template suffix ("{?name,label}") is stripped and the asset
// name passed as a query parameter.
func (c *client) UploadAsset(ctx context.Context, uploadURL, name string, data []byte) (*model.Asset, error) {
	endpoint := uploadURL
	if i := strings.Index(endpoint, "{"); i >= 0 {
		endpoint = endpoint[:i]
	}
	endpoint += "?name=" + url.QueryEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.ContentLength = int64(len(data))

	// Use the same client transport for authentication
	httpClient := &http.Client{Transport: c.githubClient.Client().Transport}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload asset %s to %s: %w", name, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response body: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status code %d uploading asset %s: %s", resp.StatusCode, name, string(body))
	}

	var asset github.ReleaseAsset
	if err := json.Unmarshal(body, &asset); err != nil {
		return nil, fmt.Errorf("failed to decode upload response for %s: %w", name, err)
	}
	return toAsset(&asset), nil
}

func toRelease(r *github.RepositoryRelease) *model.Release {
	return &model.Release{
		ID:         r.GetID(),
		TagName:    r.GetTagName(),
		Name:       r.GetName(),
		Body:       r.GetBody(),
		Draft:      r.GetDraft(),
		Prerelease: r.GetPrerelease(),
		UploadURL:  r.GetUploadURL(),
	}
}

func toAsset(a *github.ReleaseAsset) *model.Asset {
	return &model.Asset{
		ID:          a.GetID(),
		Name:        a.GetName(),
		Size:        int64(a.GetSize()),
		DownloadURL: a.GetBrowserDownloadURL(),
	}
}

func ensureTrailingSlash(s string) string {
	if !strings.HasSuffix(s, "/") {
		return s + "/"
	}
	return s
}
