package functions

import (
	"github.com/spf13/cobra"

	"github.com/sitekit/sitekit-cli/cmd/functions/create"
	"github.com/sitekit/sitekit-cli/cmd/functions/templates"
	"github.com/sitekit/sitekit-cli/internal/runtime"
)

func New(runtimeContext *runtime.Context) *cobra.Command {
	functionsCmd := &cobra.Command{
		Use:     "functions",
		Aliases: []string{"function"},
		Short:   "Manages serverless functions",
		Long:    `The functions command scaffolds and inspects the serverless functions of a site.`,
	}

	functionsCmd.AddCommand(create.New(runtimeContext))
	functionsCmd.AddCommand(templates.New(runtimeContext))

	return functionsCmd
}
