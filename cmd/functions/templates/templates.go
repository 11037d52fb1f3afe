package templates

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sitekit/sitekit-cli/internal/fntemplate"
	"github.com/sitekit/sitekit-cli/internal/runtime"
	"github.com/sitekit/sitekit-cli/internal/settings"
	"github.com/sitekit/sitekit-cli/internal/ui"
)

type handler struct {
	log *zerolog.Logger
}

func New(runtimeContext *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "templates",
		Short:        "Lists the available function templates",
		Long:         `Displays every template functions create can scaffold from, in the order the selector offers them.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := &handler{log: runtimeContext.Logger}
			return h.Execute(runtimeContext.Viper.GetString(settings.Flags.TemplatesDir.Name))
		},
	}

	cmd.Flags().String(settings.Flags.TemplatesDir.Name, "", "Read templates from this folder instead of the built-in catalog")

	return cmd
}

func (h *handler) Execute(templatesDir string) error {
	var fsys fs.FS = fntemplate.Builtin()
	if templatesDir != "" {
		fsys = os.DirFS(templatesDir)
	}

	catalog, err := fntemplate.Build(fsys)
	if err != nil {
		return fmt.Errorf("failed to load function templates: %w", err)
	}

	if len(catalog.Templates) == 0 {
		ui.Line()
		ui.Warning("No function templates found")
		ui.Line()
		return nil
	}

	ui.Line()
	ui.Title("Available Function Templates")
	ui.Line()
	ui.Print(FormatCatalogTable(catalog))
	ui.Line()
	ui.Dim("Create a function with:")
	ui.Command("  sitekit functions create")
	ui.Line()

	return nil
}

// FormatCatalogTable renders the catalog in selector order.
func FormatCatalogTable(catalog *fntemplate.Catalog) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Language", "Name", "Priority", "Add-ons", "Description"})

	for _, d := range catalog.Templates {
		addons := make([]string, 0, len(d.Addons))
		for _, a := range d.Addons {
			addons = append(addons, a.AddonName)
		}
		t.AppendRow(table.Row{
			d.Lang,
			d.Name,
			d.Priority,
			strings.Join(addons, ", "),
			d.Description,
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignLeft},
		{Number: 5, Align: text.AlignLeft},
	})

	return t.Render()
}
