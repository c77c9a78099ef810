package usecase_test

import (
	"context"
	"errors"

	"github.com/m-mizutani/relpush/pkg/domain/model"
)

// MockRegistryClient is a recording mock implementation of RegistryClient
type MockRegistryClient struct {
	getReleaseByTagFunc func(ctx context.Context, repo model.Repo, tag string) (*model.Release, error)
	listReleasesFunc    func(ctx context.Context, repo model.Repo) ([]*model.Release, error)
	createReleaseFunc   func(ctx context.Context, repo model.Repo, spec *model.ReleaseSpec) (*model.Release, error)
	listAssetsFunc      func(ctx context.Context, repo model.Repo, releaseID int64) ([]*model.Asset, error)
	deleteAssetFunc     func(ctx context.Context, repo model.Repo, assetID int64) error
	uploadAssetFunc     func(ctx context.Context, uploadURL, name string, data []byte) (*model.Asset, error)

	getByTagCalls   []string
	listCalls       int
	createCalls     []*model.ReleaseSpec
	listAssetsCalls []int64
	deleteCalls     []int64
	uploadCalls     []MockUploadCall
}

type MockUploadCall struct {
	UploadURL string
	Name      string
	Data      []byte
}

func (m *MockRegistryClient) GetReleaseByTag(ctx context.Context, repo model.Repo, tag string) (*model.Release, error) {
	m.getByTagCalls = append(m.getByTagCalls, tag)
	if m.getReleaseByTagFunc != nil {
		return m.getReleaseByTagFunc(ctx, repo, tag)
	}
	return nil, nil
}

func (m *MockRegistryClient) ListReleases(ctx context.Context, repo model.Repo) ([]*model.Release, error) {
	m.listCalls++
	if m.listReleasesFunc != nil {
		return m.listReleasesFunc(ctx, repo)
	}
	return nil, nil
}

func (m *MockRegistryClient) CreateRelease(ctx context.Context, repo model.Repo, spec *model.ReleaseSpec) (*model.Release, error) {
	m.createCalls = append(m.createCalls, spec)
	if m.createReleaseFunc != nil {
		return m.createReleaseFunc(ctx, repo, spec)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockRegistryClient) ListAssets(ctx context.Context, repo model.Repo, releaseID int64) ([]*model.Asset, error) {
	m.listAssetsCalls = append(m.listAssetsCalls, releaseID)
	if m.listAssetsFunc != nil {
		return m.listAssetsFunc(ctx, repo, releaseID)
	}
	return nil, nil
}

func (m *MockRegistryClient) DeleteAsset(ctx context.Context, repo model.Repo, assetID int64) error {
	m.deleteCalls = append(m.deleteCalls, assetID)
	if m.deleteAssetFunc != nil {
		return m.deleteAssetFunc(ctx, repo, assetID)
	}
	return nil
}

func (m *MockRegistryClient) UploadAsset(ctx context.Context, uploadURL, name string, data []byte) (*model.Asset, error) {
	m.uploadCalls = append(m.uploadCalls, MockUploadCall{UploadURL: uploadURL, Name: name, Data: data})
	if m.uploadAssetFunc != nil {
		return m.uploadAssetFunc(ctx, uploadURL, name, data)
	}
	return nil, errors.New("mock not configured")
}
