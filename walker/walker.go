// Package walker rebuilds a remote folder tree on local storage.
package walker

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"folder-pack/helpers"
	"folder-pack/log"
	"folder-pack/model"
)

// DefaultMaxDepth bounds recursion below the starting folder.
const DefaultMaxDepth = 64

// Lister returns the immediate children of a remote directory.
type Lister interface {
	ListContents(ctx context.Context, ref model.RepoReference, remotePath string) ([]model.Entry, error)
}

// Fetcher downloads a single file to dest and returns the bytes written.
type Fetcher interface {
	FetchFile(ctx context.Context, downloadURL, dest string) (int64, error)
}

// Cache restores and stores files by blob SHA.
type Cache interface {
	Get(sha, dest string) (bool, error)
	Put(sha, src string) error
}

// Reporter receives the outcome of every item.
type Reporter interface {
	Downloaded(name string, n int64, cached bool)
	FetchFailed(err *FetchError)
	ListingFailed(remotePath string, err error)
	Skipped(itemType, name string)
}

// FetchError is a single file that could not be downloaded.
type FetchError struct {
	Name string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Name, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrTooDeep is reported for directories below the depth limit.
var ErrTooDeep = errors.New("maximum folder depth exceeded")

// Walker walks a remote folder depth first, one request at a time.
type Walker struct {
	lister   Lister
	fetcher  Fetcher
	reporter Reporter
	cache    Cache
	log      *log.Logger
	maxDepth int
}

// Option configures a Walker.
type Option func(*Walker)

// WithCache restores files from c when their SHA is known.
func WithCache(c Cache) Option {
	return func(w *Walker) {
		w.cache = c
	}
}

func WithLogger(l *log.Logger) Option {
	return func(w *Walker) {
		w.log = l
	}
}

// WithMaxDepth limits how many directory levels below the start are entered.
// Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(w *Walker) {
		if n > 0 {
			w.maxDepth = n
		}
	}
}

func New(lister Lister, fetcher Fetcher, reporter Reporter, opts ...Option) *Walker {
	w := &Walker{
		lister:   lister,
		fetcher:  fetcher,
		reporter: reporter,
		log:      log.Null,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk mirrors remotePath of ref into localDir. Failures are reported where
// they happen and never stop the walk of sibling entries; Walk itself has
// nothing to return. A cancelled ctx stops the walk before the next entry.
func (w *Walker) Walk(ctx context.Context, ref model.RepoReference, remotePath, localDir string) {
	w.walk(ctx, ref, remotePath, localDir, 0)
}

func (w *Walker) walk(ctx context.Context, ref model.RepoReference, remotePath, localDir string, depth int) {
	if ctx.Err() != nil {
		return
	}
	if err := helpers.EnsureDir(localDir); err != nil {
		w.reporter.ListingFailed(remotePath, err)
		return
	}

	entries, err := w.lister.ListContents(ctx, ref, remotePath)
	if err != nil {
		w.log.Debug("listing failed", log.KeyPath, remotePath, log.ErrAttr(err))
		w.reporter.ListingFailed(remotePath, err)
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		if !safeName(entry.Name) {
			w.reporter.Skipped(entry.Type, entry.Name)
			continue
		}
		switch entry.Kind {
		case model.KindFile:
			w.fetch(ctx, entry, filepath.Join(localDir, entry.Name))
		case model.KindDirectory:
			childRemote := path.Join(remotePath, entry.Name)
			childLocal := filepath.Join(localDir, entry.Name)
			if depth+1 > w.maxDepth {
				w.reporter.ListingFailed(childRemote, ErrTooDeep)
				continue
			}
			if err := helpers.EnsureDir(childLocal); err != nil {
				w.reporter.ListingFailed(childRemote, err)
				continue
			}
			w.log.Debug("entering directory", log.KeyPath, childRemote, log.KeyDepth, depth+1)
			w.walk(ctx, ref, childRemote, childLocal, depth+1)
		default:
			w.reporter.Skipped(entry.Type, entry.Name)
		}
	}
}

// safeName rejects names that would resolve outside the directory being
// filled.
func safeName(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

func (w *Walker) fetch(ctx context.Context, entry model.Entry, dest string) {
	if w.cache != nil && entry.SHA != "" {
		hit, err := w.cache.Get(entry.SHA, dest)
		if err != nil {
			w.log.Debug("cache restore failed", log.KeyFile, dest, log.ErrAttr(err))
		}
		if hit {
			w.log.Debug("restored from cache", log.KeyFile, dest, log.KeySHA, entry.SHA)
			w.reporter.Downloaded(entry.Name, entry.Size, true)
			return
		}
	}

	n, err := w.fetcher.FetchFile(ctx, entry.DownloadURL, dest)
	if err != nil {
		w.log.Debug("download failed", log.KeyFile, dest, log.ErrAttr(err))
		w.reporter.FetchFailed(&FetchError{Name: entry.Name, Err: err})
		return
	}

	if w.cache != nil && entry.SHA != "" {
		if err := w.cache.Put(entry.SHA, dest); err != nil {
			w.log.Debug("cache store failed", log.KeyFile, dest, log.ErrAttr(err))
		}
	}
	w.reporter.Downloaded(entry.Name, n, false)
}
