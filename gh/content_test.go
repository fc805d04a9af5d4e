package gh_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"folder-pack/gh"
	"folder-pack/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRef = model.RepoReference{Owner: "owner", Repository: "repo", Branch: "main"}

func TestContentsURL(t *testing.T) {
	c := gh.NewClient()
	assert.Equal(t,
		"https://api.github.com/repos/owner/repo/contents/docs/guide?ref=main",
		c.ContentsURL(testRef, "docs/guide"),
	)
	assert.Equal(t,
		"https://api.github.com/repos/owner/repo/contents/?ref=main",
		c.ContentsURL(testRef, ""),
	)
	assert.Equal(t,
		"https://api.github.com/repos/owner/repo/contents/docs%20&%20more/a%3Fb?ref=feat%2Fx",
		c.ContentsURL(model.RepoReference{Owner: "owner", Repository: "repo", Branch: "feat/x"}, "docs & more/a?b"),
	)
}

func TestListContents(t *testing.T) {
	var gotPath, gotQuery, gotAccept, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("ref")
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"type": "file", "name": "a.txt", "path": "docs/a.txt", "sha": "abc", "size": 3, "download_url": "https://raw.example/a.txt"},
			{"type": "dir", "name": "sub", "path": "docs/sub", "download_url": null},
			{"type": "symlink", "name": "link", "path": "docs/link"},
			{"type": "submodule", "name": "vendor", "path": "docs/vendor"},
			{"type": "file", "name": "", "download_url": "https://raw.example/noname"},
			{"type": "file", "name": "nourl.txt", "download_url": null},
			{"type": "file", "name": "emptyurl.txt", "download_url": ""},
			{"type": "dir", "name": ""},
			{"name": "typeless"}
		]`)
	}))
	defer srv.Close()

	c := gh.NewClient(gh.WithAPIBaseURL(srv.URL), gh.WithUserAgent("tester"))
	entries, err := c.ListContents(context.Background(), testRef, "docs")
	require.NoError(t, err)

	assert.Equal(t, "/repos/owner/repo/contents/docs", gotPath)
	assert.Equal(t, "main", gotQuery)
	assert.Equal(t, "application/vnd.github.v3+json", gotAccept)
	assert.Equal(t, "tester", gotUA)

	assert.Equal(t, []model.Entry{
		{Name: "a.txt", Kind: model.KindFile, Type: "file", DownloadURL: "https://raw.example/a.txt", SHA: "abc", Size: 3},
		{Name: "sub", Kind: model.KindDirectory, Type: "dir"},
		{Name: "link", Kind: model.KindOther, Type: "symlink"},
		{Name: "vendor", Kind: model.KindOther, Type: "submodule"},
		{Name: "typeless", Kind: model.KindOther, Type: ""},
	}, entries)
}

func TestListContentsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := gh.NewClient(gh.WithAPIBaseURL(srv.URL))
	entries, err := c.ListContents(context.Background(), testRef, "missing")
	require.Error(t, err)
	assert.Empty(t, entries)

	var listingErr *gh.ListingError
	require.True(t, errors.As(err, &listingErr))
	assert.Equal(t, "missing", listingErr.Path)
	assert.Equal(t, http.StatusNotFound, listingErr.StatusCode)
}

func TestListContentsInvalidBody(t *testing.T) {
	bodies := map[string]string{
		"garbage":     `not json`,
		"file object": `{"type": "file", "name": "README.md"}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			}))
			defer srv.Close()

			c := gh.NewClient(gh.WithAPIBaseURL(srv.URL))
			entries, err := c.ListContents(context.Background(), testRef, "docs")
			assert.Empty(t, entries)
			assert.ErrorIs(t, err, gh.ErrInvalidResponse)

			var listingErr *gh.ListingError
			require.True(t, errors.As(err, &listingErr))
			assert.Zero(t, listingErr.StatusCode)
		})
	}
}

func TestListContentsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := gh.NewClient(gh.WithAPIBaseURL(srv.URL))
	_, err := c.ListContents(context.Background(), testRef, "docs")

	var listingErr *gh.ListingError
	require.True(t, errors.As(err, &listingErr))
	assert.Zero(t, listingErr.StatusCode)
	assert.Error(t, listingErr.Err)
}
