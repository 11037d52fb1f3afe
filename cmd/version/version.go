package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitekit/sitekit-cli/internal/runtime"
)

// Default placeholder value
var Version = "development"

func New(runtimeContext *runtime.Context) *cobra.Command {
	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the sitekit version",
		Long:  "This command prints the current version of the sitekit CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "sitekit", Version)
			return nil
		},
	}

	return versionCmd
}
