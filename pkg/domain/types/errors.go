package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures so callers can decide whether a failure
// is fatal to the whole run or only to a single file.
var (
	// ErrTagLookup marks unexpected registry failures while resolving a
	// release (lookup, listing or creation). Fatal to the run.
	ErrTagLookup = goerr.NewTag("release_lookup")

	// ErrTagUpload marks failures while listing, deleting or uploading
	// assets. Fatal only to the file being processed.
	ErrTagUpload = goerr.NewTag("asset_upload")

	// ErrTagDuplicateAsset marks the recoverable "asset already exists
	// and overwrite was not requested" case. The upload result still
	// carries the existing asset's download URL.
	ErrTagDuplicateAsset = goerr.NewTag("duplicate_asset")

	// ErrTagBadInput marks invalid user input detected before any
	// network activity (bad repository override, empty glob match).
	ErrTagBadInput = goerr.NewTag("bad_input")
)
