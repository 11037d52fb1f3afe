package create

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	goruntime "runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sitekit/sitekit-cli/internal/addons"
	"github.com/sitekit/sitekit-cli/internal/auth"
	"github.com/sitekit/sitekit-cli/internal/client/graphqlclient"
	"github.com/sitekit/sitekit-cli/internal/deps"
	"github.com/sitekit/sitekit-cli/internal/fntemplate"
	"github.com/sitekit/sitekit-cli/internal/functions"
	"github.com/sitekit/sitekit-cli/internal/hooks"
	"github.com/sitekit/sitekit-cli/internal/runtime"
	"github.com/sitekit/sitekit-cli/internal/settings"
	"github.com/sitekit/sitekit-cli/internal/siteapi"
	"github.com/sitekit/sitekit-cli/internal/templaterepo"
	"github.com/sitekit/sitekit-cli/internal/ui"
	"github.com/sitekit/sitekit-cli/internal/validation"
)

type Inputs struct {
	ArgName             string
	FlagName            string
	URL                 string `validate:"omitempty,max=2048"`
	FunctionsDir        string
	TemplatesDir        string `validate:"omitempty,dir,path_read" cli:"templates-dir"`
	DownloadConcurrency int    `validate:"gte=0" cli:"download-concurrency"`
}

func New(runtimeContext *runtime.Context) *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new function locally",
		Long: `Create a new function in the functions folder of the current project.

The function is scaffolded from one of the built-in templates, chosen with a
searchable prompt, or cloned from a folder of a GitHub repository.`,
		Example: `  sitekit functions create
  sitekit functions create hello-world
  sitekit functions create --name hello-world
  sitekit functions create --url https://github.com/org/repo/tree/main/functions/hello`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHandler(runtimeContext)

			inputs, err := h.ResolveInputs(args, runtimeContext.Viper)
			if err != nil {
				return err
			}
			if err := h.ValidateInputs(inputs); err != nil {
				return err
			}
			return h.Execute(cmd.Context(), inputs)
		},
	}

	createCmd.Flags().StringP(settings.Flags.Name.Name, settings.Flags.Name.Short, "", "Function name")
	createCmd.Flags().StringP(settings.Flags.Functions.Name, settings.Flags.Functions.Short, "", "Functions folder to create function in")
	createCmd.Flags().StringP(settings.Flags.URL.Name, settings.Flags.URL.Short, "", "Pull template from URL")
	createCmd.Flags().String(settings.Flags.TemplatesDir.Name, "", "Read templates from this folder instead of the built-in catalog")
	createCmd.Flags().Int(settings.Flags.DownloadConcurrency.Name, 0, "Maximum parallel downloads when cloning from a URL (0 means no limit)")

	return createCmd
}

type handler struct {
	log            *zerolog.Logger
	runtimeContext *runtime.Context
	prompter       functions.Prompter
	installer      *deps.Installer
	spinner        *ui.Spinner
	openBrowser    functions.BrowserOpener
	validated      bool
}

func newHandler(ctx *runtime.Context) *handler {
	return &handler{
		log:            ctx.Logger,
		runtimeContext: ctx,
		installer:      deps.NewInstaller(ctx.Logger),
		openBrowser:    openBrowser,
	}
}

func (h *handler) ResolveInputs(args []string, v *viper.Viper) (Inputs, error) {
	var argName string
	if len(args) > 0 {
		argName = args[0]
	}

	return Inputs{
		ArgName:             argName,
		FlagName:            v.GetString(settings.Flags.Name.Name),
		URL:                 v.GetString(settings.Flags.URL.Name),
		FunctionsDir:        v.GetString(settings.Flags.Functions.Name),
		TemplatesDir:        v.GetString(settings.Flags.TemplatesDir.Name),
		DownloadConcurrency: v.GetInt(settings.Flags.DownloadConcurrency.Name),
	}, nil
}

func (h *handler) ValidateInputs(inputs Inputs) error {
	validate, err := validation.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to initialize validator: %w", err)
	}

	if err := validate.Struct(inputs); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	h.validated = true
	return nil
}

func (h *handler) Execute(ctx context.Context, inputs Inputs) error {
	if !h.validated {
		return fmt.Errorf("handler inputs not validated")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var configured string
	if h.runtimeContext.Settings != nil {
		configured = h.runtimeContext.Settings.Project.Build.Functions
	}
	functionsDir, err := functions.ResolveFunctionsDir(h.log, inputs.FunctionsDir, configured)
	if err != nil {
		return err
	}

	catalog, err := h.loadCatalog(inputs.TemplatesDir)
	if err != nil {
		return err
	}

	scaffolder := functions.NewScaffolder(h.scaffolderDeps(catalog, inputs))

	result, err := scaffolder.Create(ctx, functions.Request{
		ArgName:      inputs.ArgName,
		FlagName:     inputs.FlagName,
		URL:          inputs.URL,
		FunctionsDir: functionsDir,
	})
	// Background installs finish before the process exits, even on failure.
	h.installer.Wait()
	if err != nil {
		switch {
		case functions.IsUserInputError(err):
			h.log.Error().Err(err).Msg("Function creation failed: check the name and URL given")
		case functions.IsSourceAcquisitionError(err):
			h.log.Error().Err(err).Msg("Function creation failed: could not retrieve the function source")
		default:
			h.log.Error().Err(err).Msg("Function creation failed")
		}
		return err
	}
	if result == nil {
		return nil
	}

	ui.Line()
	ui.Success(fmt.Sprintf("Function %s created in %s", result.Name, result.Path))
	return nil
}

func (h *handler) loadCatalog(templatesDir string) (*fntemplate.Catalog, error) {
	var fsys fs.FS = fntemplate.Builtin()
	if templatesDir != "" {
		fsys = os.DirFS(templatesDir)
	}

	catalog, err := fntemplate.Build(fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to load function templates: %w", err)
	}
	h.log.Debug().Int("templates", len(catalog.Templates)).Msg("Template catalog loaded")
	return catalog, nil
}

func (h *handler) scaffolderDeps(catalog *fntemplate.Catalog, inputs Inputs) functions.Deps {
	envSet := h.runtimeContext.EnvironmentSet
	site := h.runtimeContext.Site
	runner := hooks.NewExecRunner(h.log)

	gql := graphqlclient.New(envSet.GraphQLURL, h.log)
	addonInstaller := addons.NewInstaller(h.log, siteapi.New(gql, h.log), auth.NewService(h.log), runner, site)

	return functions.Deps{
		Log:                 h.log,
		Catalog:             catalog,
		Prompter:            h.prompter,
		Repo:                templaterepo.NewClient(h.log, envSet.GitHubAPIURL),
		Installer:           h.installer,
		Addons:              addonInstaller,
		Hooks:               runner,
		Site:                site,
		OpenBrowser:         h.openBrowser,
		IssuesURL:           envSet.IssuesURL,
		DownloadConcurrency: inputs.DownloadConcurrency,
		Spinner:             h.spinner,
	}
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch goruntime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
