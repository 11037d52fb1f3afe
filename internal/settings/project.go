package settings

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// ProjectSettings is the subset of sitekit.toml the CLI reads. Other tables are ignored.
type ProjectSettings struct {
	Build BuildSettings `toml:"build"`
}

type BuildSettings struct {
	Functions string `toml:"functions"`
	Publish   string `toml:"publish"`
	Command   string `toml:"command"`
}

func LoadProjectSettings(path string) (ProjectSettings, error) {
	var s ProjectSettings
	_, err := toml.DecodeFile(path, &s)
	if errors.Is(err, fs.ErrNotExist) {
		return ProjectSettings{}, nil
	}
	if err != nil {
		return ProjectSettings{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}
