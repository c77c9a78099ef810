package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpush/pkg/domain/types"
)

// Repo identifies the repository the run operates on. Resolved once
// per run and immutable afterwards.
type Repo struct {
	Owner string // Repository owner
	Name  string // Repository name
}

// String returns the "owner/name" form.
func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepo splits an "owner/name" override string into a Repo. It
// fails before any network activity when the string does not have
// exactly two non-empty segments.
func ParseRepo(s string) (Repo, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repo{}, goerr.New("invalid repository, expected owner/name",
			goerr.V("repo", s),
			goerr.T(types.ErrTagBadInput),
		)
	}
	return Repo{Owner: parts[0], Name: parts[1]}, nil
}

// NormalizeTag strips leading git ref prefixes so that values taken
// from CI context (e.g. GITHUB_REF) can be used as tag names directly.
func NormalizeTag(ref string) string {
	for _, prefix := range []string{"refs/tags/", "refs/heads/"} {
		if strings.HasPrefix(ref, prefix) {
			return strings.TrimPrefix(ref, prefix)
		}
	}
	return ref
}

// RenderAssetName expands the "$tag" substitution token in an
// asset-name template.
func RenderAssetName(template, tag string) string {
	return strings.ReplaceAll(template, "$tag", tag)
}
