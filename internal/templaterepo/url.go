package templaterepo

import (
	"net/url"
	"path"
	"strings"

	"github.com/sitekit/sitekit-cli/internal/validation"
)

// ParseRepoURL splits https://github.com/<owner>/<repo>/tree/<ref>[/<path>].
// Refs containing a slash are not supported; the first segment after tree is
// taken as the ref.
func ParseRepoURL(raw string) (RepoSource, error) {
	raw = strings.TrimSpace(raw)
	if err := validation.IsValidRepoURL(raw); err != nil {
		return RepoSource{}, err
	}

	u, err := url.Parse(raw)
	if err != nil {
		return RepoSource{}, err
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")

	return RepoSource{
		Owner: parts[0],
		Repo:  strings.TrimSuffix(parts[1], ".git"),
		Ref:   parts[3],
		Path:  strings.Join(parts[4:], "/"),
	}, nil
}

// DefaultName is the folder's last path segment, used as the default function name.
func DefaultName(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if u, err := url.Parse(raw); err == nil {
		return path.Base(u.Path)
	}
	return path.Base(raw)
}
