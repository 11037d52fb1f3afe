package functions

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sitekit/sitekit-cli/internal/fntemplate"
	"github.com/sitekit/sitekit-cli/internal/hooks"
	"github.com/sitekit/sitekit-cli/internal/runtime"
	"github.com/sitekit/sitekit-cli/internal/templaterepo"
	"github.com/sitekit/sitekit-cli/internal/ui"
	"github.com/sitekit/sitekit-cli/internal/validation"
)

type SourceKind int

const (
	SourceLocalTemplate SourceKind = iota
	SourceRemoteURL
)

func (k SourceKind) String() string {
	if k == SourceRemoteURL {
		return "url"
	}
	return "template"
}

// Request is one functions create invocation.
type Request struct {
	ArgName      string
	FlagName     string
	URL          string
	FunctionsDir string
}

// Result describes the function that was materialized.
type Result struct {
	Name     string
	Path     string
	Source   SourceKind
	Template string
	URL      string
	// DependenciesTriggered is set when a background install was started. Its
	// outcome is never part of the result.
	DependenciesTriggered bool
	AddonsInstalled       bool
}

// RepoClient lists and downloads the files of a remote folder.
type RepoClient interface {
	ListFiles(ctx context.Context, repoURL string) ([]templaterepo.FileEntry, error)
	Download(ctx context.Context, downloadURL string, dst io.Writer) error
}

// DependencyInstaller starts a non-blocking package install.
type DependencyInstaller interface {
	Start(name, dir string, done func(error))
}

// AddonInstaller provisions add-ons for the function at functionPath. A false
// result with a nil error means provisioning was skipped.
type AddonInstaller interface {
	Install(ctx context.Context, addons []fntemplate.AddonRef, functionPath string) (bool, error)
}

// BrowserOpener opens a URL for the user.
type BrowserOpener func(url string) error

type Scaffolder struct {
	log                 *zerolog.Logger
	catalog             *fntemplate.Catalog
	selector            *fntemplate.Selector
	prompter            Prompter
	repo                RepoClient
	deps                DependencyInstaller
	addons              AddonInstaller
	hooks               hooks.Runner
	site                *runtime.Site
	openBrowser         BrowserOpener
	issuesURL           string
	downloadConcurrency int
	spinner             *ui.Spinner
}

type Deps struct {
	Log         *zerolog.Logger
	Catalog     *fntemplate.Catalog
	Scorer      fntemplate.Scorer
	Prompter    Prompter
	Repo        RepoClient
	Installer   DependencyInstaller
	Addons      AddonInstaller
	Hooks       hooks.Runner
	Site        *runtime.Site
	OpenBrowser BrowserOpener
	IssuesURL   string
	// DownloadConcurrency caps parallel downloads; 0 means no cap.
	DownloadConcurrency int
	Spinner             *ui.Spinner
}

func NewScaffolder(d Deps) *Scaffolder {
	s := &Scaffolder{
		log:                 d.Log,
		catalog:             d.Catalog,
		selector:            fntemplate.NewSelector(d.Catalog, d.Scorer),
		prompter:            d.Prompter,
		repo:                d.Repo,
		deps:                d.Installer,
		addons:              d.Addons,
		hooks:               d.Hooks,
		site:                d.Site,
		openBrowser:         d.OpenBrowser,
		issuesURL:           d.IssuesURL,
		downloadConcurrency: d.DownloadConcurrency,
		spinner:             d.Spinner,
	}
	if s.prompter == nil {
		s.prompter = TerminalPrompter{}
	}
	if s.site == nil {
		s.site = runtime.NewSite("", nil)
	}
	if s.spinner == nil {
		s.spinner = ui.NewSpinner()
	}
	return s
}

// Create scaffolds a function from req.URL when set, otherwise from the
// template the user picks. It returns a nil Result without error when the
// user chose to report an issue instead.
func (s *Scaffolder) Create(ctx context.Context, req Request) (*Result, error) {
	if req.URL != "" {
		return s.createFromURL(ctx, req.URL, req)
	}

	choice, err := s.prompter.Source(s.selector)
	if err != nil {
		return nil, err
	}

	switch choice.Kind {
	case fntemplate.ChoiceURL:
		return s.createFromChosenURL(ctx, req)
	case fntemplate.ChoiceReport:
		return nil, s.report()
	default:
		return s.createFromTemplate(ctx, choice.Template, req)
	}
}

func (s *Scaffolder) createFromChosenURL(ctx context.Context, req Request) (*Result, error) {
	repoURL, err := s.prompter.RepoURL(validation.IsValidRepoURL)
	if err != nil {
		return nil, err
	}
	repoURL = strings.TrimSpace(repoURL)

	result, err := s.createFromURL(ctx, repoURL, req)
	if err != nil {
		s.log.Error().Err(err).Msgf("Error downloading from URL: %s", repoURL)
		return nil, err
	}
	return result, nil
}

func (s *Scaffolder) report() error {
	ui.Print("opening in browser: " + s.issuesURL)
	if s.openBrowser == nil {
		return nil
	}
	if err := s.openBrowser(s.issuesURL); err != nil {
		s.log.Warn().Err(err).Msg("Could not open the browser")
	}
	return nil
}

// finish runs the add-on installer and then the completion hook. An add-on
// failure skips the hook.
func (s *Scaffolder) finish(ctx context.Context, result *Result, addons []fntemplate.AddonRef, onComplete *hooks.Hook) error {
	absPath, err := filepath.Abs(result.Path)
	if err != nil {
		return err
	}

	if s.addons != nil {
		installed, err := s.addons.Install(ctx, addons, absPath)
		if err != nil {
			return err
		}
		result.AddonsInstalled = installed
	}

	if onComplete.IsZero() || s.hooks == nil {
		return nil
	}
	return s.hooks.Run(ctx, onComplete, absPath, s.site.Env())
}
