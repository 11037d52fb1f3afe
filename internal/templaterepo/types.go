package templaterepo

import "fmt"

// RepoSource is a folder inside a GitHub repository at a given ref.
type RepoSource struct {
	Owner string
	Repo  string
	Ref   string
	Path  string
}

func (s RepoSource) String() string {
	if s.Path == "" {
		return fmt.Sprintf("%s/%s@%s", s.Owner, s.Repo, s.Ref)
	}
	return fmt.Sprintf("%s/%s@%s:%s", s.Owner, s.Repo, s.Ref, s.Path)
}

// FileEntry is one downloadable file of a listed folder.
type FileEntry struct {
	Name        string
	DownloadURL string
}

// contentEntry is one element of the GitHub contents API response.
type contentEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}
