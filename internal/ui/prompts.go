package ui

import (
	"github.com/charmbracelet/huh"
)

// InputOption configures an Input prompt.
type InputOption func(*inputConfig)

type inputConfig struct {
	description string
	placeholder string
	value       string
	validate    func(string) error
}

// WithInputDescription sets the description for an Input prompt.
func WithInputDescription(desc string) InputOption {
	return func(c *inputConfig) {
		c.description = desc
	}
}

// WithPlaceholder sets the placeholder text for an Input prompt.
func WithPlaceholder(placeholder string) InputOption {
	return func(c *inputConfig) {
		c.placeholder = placeholder
	}
}

// WithValue pre-fills the input. The user can accept it with enter.
func WithValue(value string) InputOption {
	return func(c *inputConfig) {
		c.value = value
	}
}

// WithValidate rejects submissions for which fn returns an error.
func WithValidate(fn func(string) error) InputOption {
	return func(c *inputConfig) {
		c.validate = fn
	}
}

// Input displays a single text input prompt and returns the entered value.
func Input(title string, opts ...InputOption) (string, error) {
	cfg := inputConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	result := cfg.value
	input := huh.NewInput().
		Title(title).
		Value(&result)

	if cfg.description != "" {
		input = input.Description(cfg.description)
	}
	if cfg.placeholder != "" {
		input = input.Placeholder(cfg.placeholder)
	}
	if cfg.validate != nil {
		input = input.Validate(cfg.validate)
	}

	form := huh.NewForm(
		huh.NewGroup(input),
	).WithTheme(SitekitTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return result, nil
}

// SelectOption represents a single option in a Select prompt.
type SelectOption[T comparable] struct {
	Label string
	Value T
}

// Select displays a selection prompt and returns the chosen value.
func Select[T comparable](title string, options []SelectOption[T]) (T, error) {
	var result T

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[T]().
				Title(title).
				Options(toHuhOptions(options)...).
				Value(&result),
		),
	).WithTheme(SitekitTheme())

	if err := form.Run(); err != nil {
		return result, err
	}
	return result, nil
}

// SearchSelect shows a search box above a list. The list is recomputed by
// options every time the query changes.
func SearchSelect[T comparable](title, searchTitle string, height int, options func(query string) []SelectOption[T]) (T, error) {
	var (
		query  string
		result T
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(searchTitle).
				Placeholder("type to filter").
				Value(&query),
			huh.NewSelect[T]().
				Title(title).
				Height(height).
				OptionsFunc(func() []huh.Option[T] {
					return toHuhOptions(options(query))
				}, &query).
				Value(&result),
		),
	).WithTheme(SitekitTheme())

	if err := form.Run(); err != nil {
		return result, err
	}
	return result, nil
}

func toHuhOptions[T comparable](options []SelectOption[T]) []huh.Option[T] {
	huhOpts := make([]huh.Option[T], len(options))
	for i, opt := range options {
		huhOpts[i] = huh.NewOption(opt.Label, opt.Value)
	}
	return huhOpts
}
