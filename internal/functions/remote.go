package functions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sitekit/sitekit-cli/internal/constants"
	"github.com/sitekit/sitekit-cli/internal/fntemplate"
	"github.com/sitekit/sitekit-cli/internal/templaterepo"
	"github.com/sitekit/sitekit-cli/internal/validation"
)

// createFromURL clones the folder at repoURL into functionsDir.
func (s *Scaffolder) createFromURL(ctx context.Context, repoURL string, req Request) (*Result, error) {
	if err := validation.IsValidRepoURL(repoURL); err != nil {
		return nil, &InvalidURLError{URL: repoURL, Err: err}
	}

	var files []templaterepo.FileEntry
	err := s.spinner.Run("Listing "+repoURL, func() error {
		var err error
		files, err = s.repo.ListFiles(ctx, repoURL)
		return err
	})
	if err != nil {
		return nil, &DownloadError{URL: repoURL, Err: err}
	}

	defaultName := templaterepo.DefaultName(repoURL)
	name, err := ResolveName(s.prompter, req.ArgName, req.FlagName, defaultName)
	if err != nil {
		return nil, err
	}

	fnFolder := filepath.Join(req.FunctionsDir, name)
	if err := CheckRemoteTarget(fnFolder); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(fnFolder, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", fnFolder, err)
	}

	err = s.spinner.Run(fmt.Sprintf("Downloading %d files", len(files)), func() error {
		return s.downloadAll(ctx, files, fnFolder, defaultName, name)
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Name: name, Path: fnFolder, Source: SourceRemoteURL, URL: repoURL}
	s.deps.Start(name, fnFolder, nil)
	result.DependenciesTriggered = true

	manifestPath := filepath.Join(fnFolder, constants.FunctionTemplateManifestFileName)
	if _, err := os.Stat(manifestPath); err == nil {
		m, err := fntemplate.LoadManifest(os.DirFS(fnFolder), constants.FunctionTemplateManifestFileName)
		if err != nil {
			return nil, err
		}
		if err := s.finish(ctx, result, m.Addons, m.OnComplete); err != nil {
			return nil, err
		}
		if err := removeManifest(fnFolder); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// downloadAll fetches every file concurrently. It waits for all of them and
// reports the first failure; files already written stay on disk.
func (s *Scaffolder) downloadAll(ctx context.Context, files []templaterepo.FileEntry, dir, defaultName, name string) error {
	var g errgroup.Group
	if s.downloadConcurrency > 0 {
		g.SetLimit(s.downloadConcurrency)
	}

	for _, f := range files {
		g.Go(func() error {
			dest := filepath.Join(dir, remoteFileName(f.Name, defaultName, name))
			if err := s.download(ctx, f.DownloadURL, dest); err != nil {
				return &DownloadError{URL: f.DownloadURL, Err: err}
			}
			s.log.Debug().Msgf("Downloaded %s", dest)
			return nil
		})
	}

	return g.Wait()
}

func (s *Scaffolder) download(ctx context.Context, url, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if err := s.repo.Download(ctx, url, out); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return err
	}
	return out.Close()
}

// remoteFileName renames the file representing the function's main module,
// keeping its extension. Every other file keeps its name.
func remoteFileName(fileName, defaultName, name string) string {
	fileName = filepath.Base(fileName)
	ext := filepath.Ext(fileName)
	if strings.TrimSuffix(fileName, ext) == defaultName {
		return name + ext
	}
	return fileName
}
