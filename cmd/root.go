package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sitekit/sitekit-cli/cmd/functions"
	"github.com/sitekit/sitekit-cli/cmd/functions/create"
	"github.com/sitekit/sitekit-cli/cmd/version"
	"github.com/sitekit/sitekit-cli/internal/constants"
	sitekitcontext "github.com/sitekit/sitekit-cli/internal/context"
	"github.com/sitekit/sitekit-cli/internal/logger"
	sitekitruntime "github.com/sitekit/sitekit-cli/internal/runtime"
	"github.com/sitekit/sitekit-cli/internal/settings"
	"github.com/sitekit/sitekit-cli/internal/update"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = newRootCommand()

func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootLogger := createLogger()
	rootViper := createViper()
	runtimeContext := sitekitruntime.NewContext(rootLogger, rootViper)

	// By defining a Run func, we force PersistentPreRunE to execute
	// even when 'sitekit' or 'functions' is called with no subcommand
	helpRunE := func(cmd *cobra.Command, args []string) error {
		err := cmd.Help()
		if err != nil {
			return fmt.Errorf("fail to show help: %w", err)
		}
		return nil
	}

	rootCmd := &cobra.Command{
		Use:               "sitekit",
		Short:             "sitekit CLI tool",
		Long:              `A command line tool for building and managing sites and their serverless functions.`,
		DisableAutoGenTag: true,
		RunE:              helpRunE,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log := runtimeContext.Logger
			v := runtimeContext.Viper

			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if verbose := v.GetBool(settings.Flags.Verbose.Name); verbose {
				newLogger := log.Level(zerolog.DebugLevel)
				runtimeContext.Logger = &newLogger
			}

			if isLoadSettings(cmd) {
				projectRootFlag := v.GetString(settings.Flags.ProjectRoot.Name)
				projectRoot, err := sitekitcontext.SetProjectContext(projectRootFlag, runtimeContext.Logger)
				if err != nil {
					return err
				}

				if err := runtimeContext.AttachSettings(projectRoot); err != nil {
					return err
				}
			}

			// after settings so .env can override environment URLs
			if err := runtimeContext.AttachEnvironmentSet(); err != nil {
				return err
			}

			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cmd.Name() == "bash" || cmd.Name() == "zsh" || cmd.Name() == "fish" || cmd.Name() == "powershell" || cmd.Name() == "help" {
				return
			}
			if runtimeContext.EnvironmentSet == nil {
				return
			}
			update.NewChecker(runtimeContext.Logger, runtimeContext.EnvironmentSet.ReleasesURL).Check(version.Version)
		},
	}

	cobra.AddTemplateFunc("wrappedFlagUsages", func(fs *pflag.FlagSet) string {
		// 100 = wrap width
		return strings.TrimRight(fs.FlagUsagesWrapped(100), "\n")
	})

	cobra.AddTemplateFunc("hasUngrouped", func(c *cobra.Command) bool {
		for _, cmd := range c.Commands() {
			if cmd.IsAvailableCommand() && !cmd.Hidden && cmd.GroupID == "" {
				return true
			}
		}
		return false
	})

	rootCmd.SetHelpTemplate(`
{{- with (or .Long .Short)}}{{.}}{{end}}

Usage:
{{- if .Runnable}}
  {{.UseLine}}
{{- else if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]
{{- end}}

{{- /* ============================================ */}}
{{- /* Available Commands Section                 */}}
{{- /* ============================================ */}}
{{- if .HasAvailableSubCommands}}

Available Commands:
  {{- $groupsUsed := false -}}
  {{- $firstGroup := true -}}

  {{- range $grp := .Groups}}
    {{- $has := false -}}
    {{- range $.Commands}}
      {{- if (and (not .Hidden) (.IsAvailableCommand) (eq .GroupID $grp.ID))}}
        {{- $has = true}}
      {{- end}}
    {{- end}}
    
    {{- if $has}}
      {{- $groupsUsed = true -}}
      {{- if $firstGroup}}{{- $firstGroup = false -}}{{else}}

{{- end}}

  {{printf "%s:" $grp.Title}}
      {{- range $.Commands}}
        {{- if (and (not .Hidden) (.IsAvailableCommand) (eq .GroupID $grp.ID))}}
    {{rpad .Name .NamePadding}}  {{.Short}}
        {{- end}}
      {{- end}}
    {{- end}}
  {{- end}}

  {{- if $groupsUsed }}
    {{- /* Groups are in use; show ungrouped as "Other" if any */}}
    {{- if hasUngrouped .}}

  Other:
      {{- range .Commands}}
        {{- if (and (not .Hidden) (.IsAvailableCommand) (eq .GroupID ""))}}
    {{rpad .Name .NamePadding}}  {{.Short}}
        {{- end}}
      {{- end}}
    {{- end}}
  {{- else }}
    {{- /* No groups at this level; show a flat list with no "Other" header */}}
    {{- range .Commands}}
      {{- if (and (not .Hidden) (.IsAvailableCommand))}}
    {{rpad .Name .NamePadding}}  {{.Short}}
      {{- end}}
    {{- end}}
  {{- end }}
{{- end }}

{{- if .HasExample}}

Examples:
{{.Example}}
{{- end }}

{{- $local := (.LocalFlags.FlagUsagesWrapped 100 | trimTrailingWhitespaces) -}}
{{- if $local }}

Flags:
{{$local}}
{{- end }}

{{- $inherited := (.InheritedFlags.FlagUsagesWrapped 100 | trimTrailingWhitespaces) -}}
{{- if $inherited }}

Global Flags:
{{$inherited}}
{{- end }}

{{- if .HasAvailableSubCommands }}

Use "{{.CommandPath}} [command] --help" for more information about a command.
{{- end }}

Tip: scaffold your first function with:
  $ sitekit functions create
`)

	// Definition of global flags:
	// env file flag is present for every subcommand
	rootCmd.PersistentFlags().StringP(
		settings.Flags.CliEnvFile.Name,
		settings.Flags.CliEnvFile.Short,
		constants.DefaultEnvFileName,
		fmt.Sprintf("Path to %s file which contains sensitive info", constants.DefaultEnvFileName),
	)

	// project root path flag is present for every subcommand
	rootCmd.PersistentFlags().StringP(
		settings.Flags.ProjectRoot.Name,
		settings.Flags.ProjectRoot.Short,
		"",
		"Path to the project root",
	)

	// verbose flag is present in every subcommand
	rootCmd.PersistentFlags().BoolP(
		settings.Flags.Verbose.Name,
		settings.Flags.Verbose.Short,
		false,
		"Run command in VERBOSE mode",
	)
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	functionsCmd := functions.New(runtimeContext)
	versionCmd := version.New(runtimeContext)

	functionsCmd.RunE = helpRunE

	// functions:create is kept as a top-level spelling of functions create
	createAliasCmd := create.New(runtimeContext)
	createAliasCmd.Use = "functions:create [name]"
	createAliasCmd.Aliases = []string{"function:create"}
	createAliasCmd.Hidden = true

	rootCmd.AddGroup(&cobra.Group{ID: "functions", Title: "Functions"})
	functionsCmd.GroupID = "functions"

	rootCmd.AddCommand(
		functionsCmd,
		createAliasCmd,
		versionCmd,
	)

	return rootCmd
}

func isLoadSettings(cmd *cobra.Command) bool {
	// It is not expected to have the .env and the settings file when running the following commands
	var excludedCommands = map[string]struct{}{
		"version":    {},
		"bash":       {},
		"fish":       {},
		"powershell": {},
		"zsh":        {},
		"help":       {},
		"sitekit":    {},
		"functions":  {},
		"templates":  {},
	}

	_, exists := excludedCommands[cmd.Name()]
	return !exists
}

func createLogger() *zerolog.Logger {
	return logger.NewConsoleLogger()
}

func createViper() *viper.Viper {
	return viper.New() //nolint:forbidigo
}
