package hooks

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"slices"

	"github.com/rs/zerolog"

	"github.com/sitekit/sitekit-cli/internal/constants"
	"github.com/sitekit/sitekit-cli/internal/ui"
)

// Hook is a declarative post-install step: an optional message to print and
// commands to run, each given as argv.
type Hook struct {
	Message string     `yaml:"message"`
	Run     [][]string `yaml:"run" validate:"dive,min=1,dive,required"`
}

func (h *Hook) IsZero() bool {
	return h == nil || (h.Message == "" && len(h.Run) == 0)
}

// Runner executes a Hook for the function materialized at dir, with env
// layered over the process environment.
type Runner interface {
	Run(ctx context.Context, hook *Hook, dir string, env map[string]string) error
}

type ExecRunner struct {
	log *zerolog.Logger
}

func NewExecRunner(log *zerolog.Logger) *ExecRunner {
	return &ExecRunner{log: log}
}

func (r *ExecRunner) Run(ctx context.Context, hook *Hook, dir string, env map[string]string) error {
	if hook.IsZero() {
		return nil
	}
	if hook.Message != "" {
		ui.Print(hook.Message)
	}

	environ := Environ(env, dir)
	for _, argv := range hook.Run {
		if err := r.runCommand(ctx, dir, environ, argv); err != nil {
			return err
		}
	}
	return nil
}

func (r *ExecRunner) runCommand(ctx context.Context, dir string, environ []string, argv []string) error {
	r.log.Debug().Msgf("Running command: %v in directory: %s", argv, dir)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = environ

	output, err := cmd.CombinedOutput()
	if err != nil {
		r.log.Error().Err(err).Msgf("Command failed: %v\nOutput:\n%s", argv, output)
		return fmt.Errorf("hook command %q failed: %w", argv[0], err)
	}

	r.log.Debug().Msgf("Command succeeded: %v", argv)
	if len(output) > 0 {
		ui.Dim(string(output))
	}
	return nil
}

// Environ is the process environment plus env, plus SITEKIT_FUNCTION_PATH=dir.
// Keys in env are applied in sorted order.
func Environ(env map[string]string, dir string) []string {
	environ := os.Environ()
	for _, k := range slices.Sorted(maps.Keys(env)) {
		environ = append(environ, k+"="+env[k])
	}
	return append(environ, constants.FunctionPathEnvVar+"="+dir)
}
