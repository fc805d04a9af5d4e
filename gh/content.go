package gh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"folder-pack/log"
	"folder-pack/model"
)

// ErrInvalidResponse is wrapped by a ListingError when a 200 response does
// not decode as a directory listing.
var ErrInvalidResponse = errors.New("invalid response from GitHub API")

// ListingError reports a directory listing that could not be obtained.
// StatusCode is set when the API answered with something other than 200.
type ListingError struct {
	Path       string
	StatusCode int
	Err        error
}

func (e *ListingError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("listing %q: HTTP %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("listing %q: %v", e.Path, e.Err)
}

func (e *ListingError) Unwrap() error { return e.Err }

// Item is one element of a contents API directory response.
type Item struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Path        string  `json:"path"`
	SHA         string  `json:"sha,omitempty"`
	Size        int64   `json:"size,omitempty"`
	DownloadURL *string `json:"download_url"`
}

// ContentsURL returns the contents API URL for path in the given repository
// at branch. Path segments are escaped individually.
func (c *Client) ContentsURL(ref model.RepoReference, path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf(
		"%s/repos/%s/%s/contents/%s?ref=%s",
		strings.TrimSuffix(c.apiBaseURL, "/"),
		url.PathEscape(ref.Owner),
		url.PathEscape(ref.Repository),
		strings.Join(segments, "/"),
		url.QueryEscape(ref.Branch),
	)
}

// ListContents lists the immediate children of path with a single contents
// API request. File entries without a name or download URL and directory
// entries without a name are dropped. Everything that is neither a file nor a
// directory is returned as model.KindOther.
func (c *Client) ListContents(ctx context.Context, ref model.RepoReference, path string) ([]model.Entry, error) {
	endpoint := c.ContentsURL(ref, path)
	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return nil, &ListingError{Path: path, Err: err}
	}
	req.Header.Set("Accept", mediaType)

	c.log.Debug("listing directory", log.KeyPath, path, log.KeyURL, endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ListingError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ListingError{
			Path:       path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %s", resp.Status),
		}
	}

	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		c.log.Debug("decoding listing failed", log.KeyPath, path, log.ErrAttr(err))
		return nil, &ListingError{Path: path, Err: ErrInvalidResponse}
	}

	return toEntries(items), nil
}

func toEntries(items []Item) []model.Entry {
	entries := make([]model.Entry, 0, len(items))
	for _, item := range items {
		switch item.Type {
		case "file":
			if item.Name == "" || item.DownloadURL == nil || *item.DownloadURL == "" {
				continue
			}
			entries = append(entries, model.Entry{
				Name:        item.Name,
				Kind:        model.KindFile,
				Type:        item.Type,
				DownloadURL: *item.DownloadURL,
				SHA:         item.SHA,
				Size:        item.Size,
			})
		case "dir":
			if item.Name == "" {
				continue
			}
			entries = append(entries, model.Entry{
				Name: item.Name,
				Kind: model.KindDirectory,
				Type: item.Type,
				SHA:  item.SHA,
			})
		default:
			entries = append(entries, model.Entry{
				Name: item.Name,
				Kind: model.KindOther,
				Type: item.Type,
			})
		}
	}
	return entries
}
