package fntemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/sitekit/sitekit-cli/internal/hooks"
	"github.com/sitekit/sitekit-cli/internal/validation"
)

// DefaultPriority is used for templates that do not declare one.
const DefaultPriority = 999

// Manifest is the parsed .sitekit-function-template.yaml of a template.
type Manifest struct {
	Name        string      `yaml:"name" validate:"required,function_name" cli:"name"`
	Description string      `yaml:"description" cli:"description"`
	Priority    int         `yaml:"priority" validate:"gte=0" cli:"priority"`
	Addons      []AddonRef  `yaml:"addons" validate:"dive" cli:"addons"`
	OnComplete  *hooks.Hook `yaml:"onComplete" validate:"omitnil" cli:"onComplete"`
}

// AddonRef names a provider add-on the function depends on.
type AddonRef struct {
	AddonName string      `yaml:"addonName" validate:"required" cli:"addonName"`
	OnInstall *hooks.Hook `yaml:"onInstall" validate:"omitnil" cli:"onInstall"`
}

// EffectivePriority is Priority, or DefaultPriority when unset.
func (m *Manifest) EffectivePriority() int {
	if m.Priority == 0 {
		return DefaultPriority
	}
	return m.Priority
}

// ParseManifest decodes and validates a manifest. Unknown keys are rejected.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("manifest is empty")
		}
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	v, err := validation.NewValidator()
	if err != nil {
		return nil, err
	}
	if err := v.Struct(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest reads and parses the manifest at name within fsys.
func LoadManifest(fsys fs.FS, name string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}
