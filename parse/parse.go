package parse

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"folder-pack/model"
)

// folderMarker is the path segment GitHub uses for directory links; single
// files use "blob".
const folderMarker = "tree"

var hostPrefixes = []string{
	"https://github.com/",
	"https://www.github.com/",
}

var (
	ErrInvalidURL = errors.New("invalid GitHub URL")
	ErrNotFolder  = errors.New("URL must be a direct link to a folder (tree), not a file (blob)")
)

// InvalidURLError is returned for any URL that does not reference a folder
// in a GitHub repository.
type InvalidURLError struct {
	URL string
	Err error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.URL)
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

// ParseRepoURL validates a GitHub folder URL of the form
// https://github.com/owner/repo/tree/branch/path/to/dir and extracts its
// components. The folder path may be empty for the repository root.
func ParseRepoURL(urlStr string) (model.RepoReference, error) {
	urlStr = strings.TrimSpace(urlStr)

	var rest string
	found := false
	for _, prefix := range hostPrefixes {
		if strings.HasPrefix(urlStr, prefix) {
			rest = strings.TrimPrefix(urlStr, prefix)
			found = true
			break
		}
	}
	if !found {
		return model.RepoReference{}, &InvalidURLError{URL: urlStr, Err: ErrInvalidURL}
	}

	// ?plain=1 and #readme style suffixes are not part of the path
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}

	parts := strings.Split(rest, "/")
	if len(parts) < 4 || parts[2] != folderMarker {
		return model.RepoReference{}, &InvalidURLError{URL: urlStr, Err: ErrNotFolder}
	}

	owner, repository, branch := unescape(parts[0]), unescape(parts[1]), unescape(parts[3])
	if owner == "" || repository == "" || branch == "" {
		return model.RepoReference{}, &InvalidURLError{URL: urlStr, Err: ErrInvalidURL}
	}

	var segments []string
	for _, p := range parts[4:] {
		if p == "" {
			continue
		}
		segments = append(segments, unescape(p))
	}

	return model.RepoReference{
		Owner:      owner,
		Repository: repository,
		Branch:     branch,
		Path:       strings.Join(segments, "/"),
	}, nil
}

func unescape(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
