package model

// Release represents a release object owned by the remote registry.
// The resolver only obtains a reference to it; it is never mutated
// locally after resolution.
type Release struct {
	ID         int64  // Registry-assigned identity
	TagName    string // Git tag the release is attached to
	Name       string // Display name
	Body       string // Body text (release notes)
	Draft      bool   // True while the release is unpublished
	Prerelease bool   // Prerelease flag
	UploadURL  string // Hypermedia URL assets are uploaded to
}

// ReleaseSpec carries the attributes used when a release has to be
// created because no existing one matched the tag.
type ReleaseSpec struct {
	TagName    string
	Name       string
	Body       string
	Prerelease bool
}

// Asset represents a binary file attached to a release. Names are
// unique within a release.
type Asset struct {
	ID          int64  // Registry-assigned identity within the release
	Name        string // Asset name, unique per release
	Size        int64  // Byte size
	DownloadURL string // Public download URL
}
