package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// File is the optional TOML configuration file giving defaults for
// upload options. Values from the file are only used for flags the
// user did not set explicitly.
type File struct {
	Repo        string `toml:"repo"`
	Tag         string `toml:"tag"`
	Overwrite   bool   `toml:"overwrite"`
	Prerelease  bool   `toml:"prerelease"`
	ReleaseName string `toml:"release_name"`
	Body        string `toml:"body"`
	AssetName   string `toml:"asset_name"`
}

// LoadFile reads and parses a TOML configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &f, nil
}

// Apply fills upload options the user did not set on the command line.
// isSet reports whether the named flag was set explicitly.
func (f *File) Apply(isSet func(name string) bool, up *Upload) {
	if !isSet("repo") && f.Repo != "" {
		up.Repo = f.Repo
	}
	if !isSet("tag") && f.Tag != "" {
		up.Tag = f.Tag
	}
	if !isSet("overwrite") {
		up.Overwrite = up.Overwrite || f.Overwrite
	}
	if !isSet("prerelease") {
		up.Prerelease = up.Prerelease || f.Prerelease
	}
	if !isSet("release-name") && f.ReleaseName != "" {
		up.ReleaseName = f.ReleaseName
	}
	if !isSet("body") && f.Body != "" {
		up.Body = f.Body
	}
	if !isSet("asset-name") && f.AssetName != "" {
		up.AssetName = f.AssetName
	}
}
