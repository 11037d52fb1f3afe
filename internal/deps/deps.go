package deps

import (
	"context"
	"os/exec"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sitekit/sitekit-cli/internal/constants"
)

// CommandFunc runs the package installation in dir.
type CommandFunc func(ctx context.Context, dir string) ([]byte, error)

// Installer runs dependency installs in the background. Start never blocks and
// its outcome only reaches the log; Wait lets the process drain outstanding
// installs before exiting.
type Installer struct {
	log     *zerolog.Logger
	command CommandFunc
	wg      sync.WaitGroup
}

func NewInstaller(log *zerolog.Logger) *Installer {
	return NewInstallerWithCommand(log, npmInstall)
}

func NewInstallerWithCommand(log *zerolog.Logger, command CommandFunc) *Installer {
	return &Installer{log: log, command: command}
}

// Start launches the install for the function called name, rooted at dir.
// done, if non-nil, is called with the result once the install finishes.
func (i *Installer) Start(name, dir string, done func(error)) {
	i.log.Info().Msgf("installing dependencies for %s...", name)

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()

		output, err := i.command(context.Background(), dir)
		if err != nil {
			i.log.Warn().Err(err).Str("output", string(output)).Msgf("installing dependencies for %s failed", name)
		} else {
			i.log.Info().Msgf("installing dependencies for %s complete", name)
		}
		if done != nil {
			done(err)
		}
	}()
}

// Wait blocks until every started install has finished.
func (i *Installer) Wait() {
	i.wg.Wait()
}

func npmInstall(ctx context.Context, dir string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, constants.DependencyInstallCommand, "install")
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
