package validation

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sitekit/sitekit-cli/internal/constants"
)

// FunctionNameRegex matches names that are safe to use as a file or directory name.
var FunctionNameRegex = regexp.MustCompile(`^[\w\-.]+$`)

func isFunctionName(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		panic(fmt.Sprintf("input field name is not a string: %s", fl.FieldName()))
	}

	return IsValidFunctionName(field.String()) == nil
}

func isGitHubTreeURL(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		panic(fmt.Sprintf("input field name is not a string: %s", fl.FieldName()))
	}

	return IsValidRepoURL(field.String()) == nil
}

func IsValidFunctionName(name string) error {
	if name == "" {
		return fmt.Errorf("function name can't be an empty string")
	}

	if !FunctionNameRegex.MatchString(name) {
		return fmt.Errorf("function name can only contain letters (a-z, A-Z), numbers (0-9), underscores (_), dashes (-), and dots (.)")
	}

	if name == "." || name == ".." {
		return fmt.Errorf("function name can't be %q", name)
	}

	return nil
}

// IsValidRepoURL accepts https://github.com/<owner>/<repo>/tree/<ref>[/<path>...].
func IsValidRepoURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("URL can't be an empty string")
	}
	if len(raw) > constants.MaxURLLength {
		return fmt.Errorf("URL is too long, limit is %d characters", constants.MaxURLLength)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("URL must use https")
	}
	if u.Host != "github.com" {
		return fmt.Errorf("only github.com URLs are supported")
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 4 || segments[2] != "tree" {
		return fmt.Errorf("URL must point to a folder, like https://github.com/org/repo/tree/main/my-function")
	}
	for _, s := range segments {
		if s == "" {
			return fmt.Errorf("URL path contains an empty segment")
		}
	}

	return nil
}
