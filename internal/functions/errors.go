package functions

import (
	"errors"
	"fmt"
)

// ConflictingInputError is returned when the name is given both as an
// argument and as a flag.
type ConflictingInputError struct {
	Arg  string
	Flag string
}

func (e *ConflictingInputError) Error() string {
	return "function name specified in both flag and arg format, pick one"
}

type InvalidNameError struct {
	Name string
	Err  error
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid function name %q: %v", e.Name, e.Err)
}

func (e *InvalidNameError) Unwrap() error { return e.Err }

type InvalidURLError struct {
	URL string
	Err error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid repository URL %q: %v", e.URL, e.Err)
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

// TargetExistsError means materializing would overwrite something on disk.
type TargetExistsError struct {
	Path string
	// SingleFile is set when the collision is a single-file function next to
	// the target directory.
	SingleFile bool
}

func (e *TargetExistsError) Error() string {
	if e.SingleFile {
		return fmt.Sprintf("a single file version of the function already exists at %s", e.Path)
	}
	return fmt.Sprintf("function %s already exists, cancelling", e.Path)
}

// MisconfiguredTemplateError means a catalog entry has no matching source folder.
type MisconfiguredTemplateError struct {
	Template string
	Dir      string
}

func (e *MisconfiguredTemplateError) Error() string {
	return fmt.Sprintf("there isn't a corresponding folder to the selected name, %s template is misconfigured (looked for %s)", e.Template, e.Dir)
}

type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("error while retrieving %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

type MissingFunctionsDirError struct{}

func (e *MissingFunctionsDirError) Error() string {
	return "no functions folder specified in sitekit.toml or as an argument"
}

// IsUserInputError reports whether err stems from what the user typed or passed.
func IsUserInputError(err error) bool {
	var (
		conflict *ConflictingInputError
		name     *InvalidNameError
		u        *InvalidURLError
	)
	return errors.As(err, &conflict) || errors.As(err, &name) || errors.As(err, &u)
}

// IsSourceAcquisitionError reports whether err happened while fetching the
// template or remote files.
func IsSourceAcquisitionError(err error) bool {
	var (
		dl  *DownloadError
		mis *MisconfiguredTemplateError
	)
	return errors.As(err, &dl) || errors.As(err, &mis)
}
