package model

// UploadRequest describes one file to be attached to a release.
type UploadRequest struct {
	FilePath  string // Local path to the file
	AssetName string // Name the asset should have in the release
	Overwrite bool   // Replace a same-named asset instead of refusing
}

// UploadResult is the outcome of processing a single file.
type UploadResult struct {
	AssetName string // Name the asset occupies (or would have occupied)
	URL       string // Public download URL of the uploaded or pre-existing asset
	Skipped   bool   // True when the path was not a regular file and nothing was done
}
