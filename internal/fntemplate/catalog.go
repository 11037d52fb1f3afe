package fntemplate

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"

	"github.com/sitekit/sitekit-cli/internal/constants"
	"github.com/sitekit/sitekit-cli/internal/hooks"
)

// Languages are scanned in this order. A language without a directory is skipped.
var Languages = []string{"js", "ts", "go"}

// Descriptor is one template available for scaffolding.
type Descriptor struct {
	Name        string
	Description string
	Priority    int
	Lang        string
	Addons      []AddonRef
	OnComplete  *hooks.Hook
	// SourceDir is the template's directory within the catalog filesystem.
	SourceDir string
}

// ID identifies a descriptor within a catalog.
func (d Descriptor) ID() string {
	return d.Lang + "/" + d.Name
}

// Catalog is the ordered set of templates found in a filesystem laid out as
// <lang>/<template>/.sitekit-function-template.yaml.
type Catalog struct {
	FS        fs.FS
	Templates []Descriptor
}

// Build scans fsys. Any manifest that fails to load aborts the whole build.
func Build(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{FS: fsys}

	for _, lang := range Languages {
		entries, err := fs.ReadDir(fsys, lang)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s templates: %w", lang, err)
		}

		var templates []Descriptor
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			manifestPath := path.Join(lang, entry.Name(), constants.FunctionTemplateManifestFileName)
			m, err := LoadManifest(fsys, manifestPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load template %s/%s: %w", lang, entry.Name(), err)
			}
			templates = append(templates, Descriptor{
				Name:        m.Name,
				Description: m.Description,
				Priority:    m.EffectivePriority(),
				Lang:        lang,
				Addons:      m.Addons,
				OnComplete:  m.OnComplete,
				// the manifest name, not the directory name, locates the
				// sources; a mismatch surfaces when the template is used
				SourceDir: path.Join(lang, m.Name),
			})
		}

		slices.SortStableFunc(templates, func(a, b Descriptor) int {
			return a.Priority - b.Priority
		})
		c.Templates = append(c.Templates, templates...)
	}

	return c, nil
}

// Lookup finds a template by ID.
func (c *Catalog) Lookup(id string) (Descriptor, bool) {
	for _, d := range c.Templates {
		if d.ID() == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// byLang returns the templates of one language in catalog order.
func (c *Catalog) byLang(lang string) []Descriptor {
	var out []Descriptor
	for _, d := range c.Templates {
		if d.Lang == lang {
			out = append(out, d)
		}
	}
	return out
}
