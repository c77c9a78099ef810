package github_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relpush/pkg/domain/interfaces"
	"github.com/m-mizutani/relpush/pkg/domain/model"
	githubinfra "github.com/m-mizutani/relpush/pkg/infra/github"
)

var testRepo = model.Repo{Owner: "owner", Name: "repo"}

func newTestClient(t *testing.T, mux *http.ServeMux) (interfaces.RegistryClient, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := githubinfra.NewClient("test-token",
		githubinfra.WithBaseURL(server.URL, server.URL))
	gt.NoError(t, err)

	return client, server
}

func TestClient_GetReleaseByTag(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/owner/repo/releases/tags/v1.0.0", func(w http.ResponseWriter, r *http.Request) {
		gt.String(t, r.Header.Get("Authorization")).Contains("test-token")
		fmt.Fprint(w, `{"id":5,"tag_name":"v1.0.0","name":"Release 1.0.0","draft":false,"prerelease":true,"upload_url":"https://uploads.example.com/repos/owner/repo/releases/5/assets{?name,label}"}`)
	})
	mux.HandleFunc("GET /repos/owner/repo/releases/tags/v9.9.9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})
	mux.HandleFunc("GET /repos/owner/repo/releases/tags/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client, _ := newTestClient(t, mux)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		release, err := client.GetReleaseByTag(ctx, testRepo, "v1.0.0")
		gt.NoError(t, err)
		gt.Value(t, release).NotNil()
		gt.Value(t, release.ID).Equal(int64(5))
		gt.Value(t, release.TagName).Equal("v1.0.0")
		gt.Value(t, release.Prerelease).Equal(true)
		gt.String(t, release.UploadURL).Contains("{?name,label}")
	})

	t.Run("not found is not an error", func(t *testing.T) {
		release, err := client.GetReleaseByTag(ctx, testRepo, "v9.9.9")
		gt.NoError(t, err)
		gt.Value(t, release).Nil()
	})

	t.Run("server error propagates", func(t *testing.T) {
		_, err := client.GetReleaseByTag(ctx, testRepo, "broken")
		gt.Error(t, err)
	})
}

func TestClient_ListReleases_Pagination(t *testing.T) {
	var server *httptest.Server

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/owner/repo/releases", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"id":2,"tag_name":"v1.0.0","draft":true}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/owner/repo/releases?page=2>; rel="next"`, server.URL))
		fmt.Fprint(w, `[{"id":1,"tag_name":"v0.9.0"}]`)
	})

	client, srv := newTestClient(t, mux)
	server = srv

	releases, err := client.ListReleases(context.Background(), testRepo)
	gt.NoError(t, err)
	gt.Number(t, len(releases)).Equal(2)
	gt.Value(t, releases[0].TagName).Equal("v0.9.0")
	gt.Value(t, releases[1].TagName).Equal("v1.0.0")
	gt.Value(t, releases[1].Draft).Equal(true)
}

func TestClient_CreateRelease(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/owner/repo/releases", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		gt.NoError(t, err)

		var posted map[string]any
		gt.NoError(t, json.Unmarshal(body, &posted))
		gt.Value(t, posted["tag_name"]).Equal("v1.0.0")
		gt.Value(t, posted["prerelease"]).Equal(true)
		// Name and body stay unset so the registry applies defaults.
		_, hasName := posted["name"]
		gt.Value(t, hasName).Equal(false)

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":99,"tag_name":"v1.0.0","prerelease":true}`)
	})

	client, _ := newTestClient(t, mux)

	release, err := client.CreateRelease(context.Background(), testRepo, &model.ReleaseSpec{
		TagName:    "v1.0.0",
		Prerelease: true,
	})
	gt.NoError(t, err)
	gt.Value(t, release.ID).Equal(int64(99))
	gt.Value(t, release.TagName).Equal("v1.0.0")
}

func TestClient_ListAssets(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/owner/repo/releases/5/assets", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":7,"name":"out.bin","size":200,"browser_download_url":"https://example.com/download/out.bin"}]`)
	})

	client, _ := newTestClient(t, mux)

	assets, err := client.ListAssets(context.Background(), testRepo, 5)
	gt.NoError(t, err)
	gt.Number(t, len(assets)).Equal(1)
	gt.Value(t, assets[0].ID).Equal(int64(7))
	gt.Value(t, assets[0].Name).Equal("out.bin")
	gt.Value(t, assets[0].Size).Equal(int64(200))
	gt.Value(t, assets[0].DownloadURL).Equal("https://example.com/download/out.bin")
}

func TestClient_DeleteAsset(t *testing.T) {
	var deleted bool

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /repos/owner/repo/releases/assets/7", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})

	client, _ := newTestClient(t, mux)

	gt.NoError(t, client.DeleteAsset(context.Background(), testRepo, 7))
	gt.Value(t, deleted).Equal(true)
}

func TestClient_UploadAsset(t *testing.T) {
	content := []byte("binary content here")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/owner/repo/releases/5/assets", func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Query().Get("name")).Equal("out.bin")
		gt.Value(t, r.Header.Get("Content-Type")).Equal("application/octet-stream")
		gt.Value(t, r.ContentLength).Equal(int64(len(content)))

		body, err := io.ReadAll(r.Body)
		gt.NoError(t, err)
		gt.Value(t, body).Equal(content)

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":10,"name":"out.bin","size":19,"browser_download_url":"https://example.com/download/out.bin"}`)
	})

	client, server := newTestClient(t, mux)

	// The hypermedia template suffix must be stripped before the request.
	uploadURL := server.URL + "/repos/owner/repo/releases/5/assets{?name,label}"

	asset, err := client.UploadAsset(context.Background(), uploadURL, "out.bin", content)
	gt.NoError(t, err)
	gt.Value(t, asset.Name).Equal("out.bin")
	gt.Value(t, asset.DownloadURL).Equal("https://example.com/download/out.bin")
}

func TestClient_UploadAsset_Failure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/owner/repo/releases/5/assets", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"Validation Failed"}`)
	})

	client, server := newTestClient(t, mux)

	uploadURL := server.URL + "/repos/owner/repo/releases/5/assets{?name,label}"
	_, err := client.UploadAsset(context.Background(), uploadURL, "out.bin", []byte("x"))
	gt.Error(t, err)
}
