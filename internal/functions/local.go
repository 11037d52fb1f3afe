package functions

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sitekit/sitekit-cli/internal/constants"
	"github.com/sitekit/sitekit-cli/internal/fntemplate"
)

const templateSuffix = ".tmpl"

// createFromTemplate materializes d into functionsDir.
func (s *Scaffolder) createFromTemplate(ctx context.Context, d fntemplate.Descriptor, req Request) (*Result, error) {
	if info, err := fs.Stat(s.catalog.FS, d.SourceDir); err != nil || !info.IsDir() {
		return nil, &MisconfiguredTemplateError{Template: d.Name, Dir: d.SourceDir}
	}

	name, err := ResolveName(s.prompter, req.ArgName, req.FlagName, d.Name)
	if err != nil {
		return nil, err
	}
	s.log.Info().Msgf("Creating function %s", name)

	functionPath := filepath.Join(req.FunctionsDir, name)
	if err := CheckTarget(functionPath); err != nil {
		return nil, err
	}

	vars := map[string]string{
		"{{functionName}}": name,
		"{{templateName}}": d.Name,
	}
	created, err := copyTemplate(s.catalog.FS, d.SourceDir, functionPath, vars)
	for _, f := range created {
		s.log.Info().Msgf("Created %s", f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to copy template %s: %w", d.Name, err)
	}

	if name != d.Name {
		if err := renameMainFile(functionPath, d.Name, name); err != nil {
			s.log.Warn().Err(err).Msgf("Could not rename the main file of %s", d.Name)
		}
	}

	if err := removeManifest(functionPath); err != nil {
		return nil, err
	}

	result := &Result{Name: name, Path: functionPath, Source: SourceLocalTemplate, Template: d.ID()}
	for _, f := range created {
		if filepath.Base(f) == constants.PackageManifestFileName {
			s.deps.Start(name, functionPath, nil)
			result.DependenciesTriggered = true
			break
		}
	}

	if err := s.finish(ctx, result, d.Addons, d.OnComplete); err != nil {
		return nil, err
	}
	return result, nil
}

// copyTemplate writes every file under srcDir into destDir, replacing each
// key of vars found in file contents. A leading "_" in a name becomes "." and
// a trailing .tmpl is dropped. Paths written so far are returned even on error.
func copyTemplate(fsys fs.FS, srcDir, destDir string, vars map[string]string) ([]string, error) {
	replacer := newReplacer(vars)
	var created []string

	err := fs.WalkDir(fsys, srcDir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, srcDir), "/")
		target := filepath.Join(destDir, filepath.FromSlash(outputPath(rel, !entry.IsDir())))

		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, []byte(replacer.Replace(string(data))), 0o644); err != nil {
			return err
		}
		created = append(created, target)
		return nil
	})

	return created, err
}

func outputPath(rel string, isFile bool) string {
	if rel == "" {
		return ""
	}
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, "_") {
			part = "." + part[1:]
		}
		parts[i] = part
	}
	last := len(parts) - 1
	if base := strings.TrimSuffix(parts[last], templateSuffix); isFile && base != "" {
		parts[last] = base
	}
	return path.Join(parts...)
}

func newReplacer(vars map[string]string) *strings.Replacer {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, k, v)
	}
	return strings.NewReplacer(pairs...)
}

// renameMainFile renames <templateName><ext> in dir to <name><ext>.
func renameMainFile(dir, templateName, name string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if strings.TrimSuffix(e.Name(), ext) == templateName {
			return os.Rename(filepath.Join(dir, e.Name()), filepath.Join(dir, name+ext))
		}
	}
	return fmt.Errorf("no file named %s.* in %s", templateName, dir)
}

func removeManifest(dir string) error {
	err := os.Remove(filepath.Join(dir, constants.FunctionTemplateManifestFileName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove template manifest: %w", err)
	}
	return nil
}
