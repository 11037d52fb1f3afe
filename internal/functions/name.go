package functions

import (
	"strings"

	"github.com/sitekit/sitekit-cli/internal/validation"
)

// ResolveName picks the function name from the positional argument or the
// --name flag, prompting with defaultName when neither is given.
func ResolveName(p Prompter, arg, flag, defaultName string) (string, error) {
	if arg != "" && flag != "" {
		return "", &ConflictingInputError{Arg: arg, Flag: flag}
	}

	name := arg
	if name == "" {
		name = flag
	}
	if name != "" {
		if err := validation.IsValidFunctionName(name); err != nil {
			return "", &InvalidNameError{Name: name, Err: err}
		}
		return name, nil
	}

	name, err := p.FunctionName(defaultName, validation.IsValidFunctionName)
	name = strings.TrimSpace(name)
	if err != nil {
		// a typed value the prompt itself rejected is still a bad name
		if name != "" && validation.IsValidFunctionName(name) != nil {
			return "", &InvalidNameError{Name: name, Err: err}
		}
		return "", err
	}
	if err := validation.IsValidFunctionName(name); err != nil {
		return "", &InvalidNameError{Name: name, Err: err}
	}
	return name, nil
}
