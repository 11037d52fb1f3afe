package functions

import (
	"fmt"

	"github.com/sitekit/sitekit-cli/internal/fntemplate"
	"github.com/sitekit/sitekit-cli/internal/ui"
)

// Prompter asks the user for whatever the flags did not provide.
type Prompter interface {
	FunctionName(defaultName string, validate func(string) error) (string, error)
	Source(selector *fntemplate.Selector) (fntemplate.Choice, error)
	RepoURL(validate func(string) error) (string, error)
}

// TerminalPrompter renders prompts with huh.
type TerminalPrompter struct{}

func (TerminalPrompter) FunctionName(defaultName string, validate func(string) error) (string, error) {
	return ui.Input("Name your function:",
		ui.WithValue(defaultName),
		ui.WithValidate(validate),
	)
}

func (TerminalPrompter) Source(selector *fntemplate.Selector) (fntemplate.Choice, error) {
	value, err := ui.SearchSelect("Pick a template", "Search templates", 12, func(query string) []ui.SelectOption[string] {
		choices := selector.Choices(query)
		opts := make([]ui.SelectOption[string], len(choices))
		for i, c := range choices {
			label := c.Label()
			if c.Kind == fntemplate.ChoiceTemplate {
				label = ui.RenderAccent(fmt.Sprintf("%-3s", c.Template.Lang)) + " [" + c.Template.Name + "] " + c.Template.Description
			}
			opts[i] = ui.SelectOption[string]{Label: label, Value: c.Value()}
		}
		return opts
	})
	if err != nil {
		return fntemplate.Choice{}, err
	}

	choice, ok := selector.Resolve(value)
	if !ok {
		return fntemplate.Choice{}, fmt.Errorf("unknown template choice %q", value)
	}
	return choice, nil
}

func (TerminalPrompter) RepoURL(validate func(string) error) (string, error) {
	return ui.Input("URL to clone:",
		ui.WithPlaceholder("https://github.com/org/repo/tree/main/my-function"),
		ui.WithValidate(validate),
	)
}
