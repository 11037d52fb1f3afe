package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// SiteState is the linked-site record kept in .sitekit/state.json.
type SiteState struct {
	ID string `json:"siteId"`
}

func LoadSiteState(path string) (SiteState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return SiteState{}, nil
	}
	if err != nil {
		return SiteState{}, fmt.Errorf("failed to read site state: %w", err)
	}

	var s SiteState
	if err := json.Unmarshal(data, &s); err != nil {
		return SiteState{}, fmt.Errorf("failed to parse site state %s: %w", path, err)
	}
	return s, nil
}
