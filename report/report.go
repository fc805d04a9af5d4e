// Package report prints the progress lines of a download run and keeps the
// tallies for the final summary.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"folder-pack/gh"
	"folder-pack/helpers"
	"folder-pack/walker"

	"github.com/olekukonko/tablewriter"
)

// Stats are the totals of a run.
type Stats struct {
	Downloaded     int
	Cached         int
	Bytes          int64
	FailedFiles    int
	FailedListings int
	Skipped        int
}

// Reporter writes one line per event to out.
type Reporter struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
	stats Stats
}

func New(out io.Writer, color bool) *Reporter {
	return &Reporter{out: out, color: color}
}

func (r *Reporter) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

func (r *Reporter) Prompt(msg string) {
	r.printf("%s ", msg)
}

func (r *Reporter) Start(localDir string) {
	r.printf("Downloading to: %s\n", localDir)
}

func (r *Reporter) Downloaded(name string, n int64, cached bool) {
	r.mu.Lock()
	r.stats.Downloaded++
	r.stats.Bytes += n
	if cached {
		r.stats.Cached++
	}
	r.mu.Unlock()

	r.printf("%s %s\n", helpers.Colorize("Downloaded:", helpers.Green, r.color), name)
}

func (r *Reporter) FetchFailed(err *walker.FetchError) {
	r.mu.Lock()
	r.stats.FailedFiles++
	r.mu.Unlock()

	r.printf("%s: %v\n", helpers.Colorize("Failed to download "+err.Name, helpers.Red, r.color), err.Err)
}

// ListingFailed reports a directory that could not be listed. Status
// failures and undecodable bodies get their own wording.
func (r *Reporter) ListingFailed(path string, err error) {
	r.mu.Lock()
	r.stats.FailedListings++
	r.mu.Unlock()

	var listingErr *gh.ListingError
	switch {
	case errors.As(err, &listingErr) && listingErr.StatusCode != 0:
		r.printf("%s. Status code: %d\n",
			helpers.Colorize("Failed to download "+path, helpers.Red, r.color), listingErr.StatusCode)
	case errors.Is(err, gh.ErrInvalidResponse):
		r.printf("%s %s\n",
			helpers.Colorize("Invalid response from GitHub API for path:", helpers.Red, r.color), path)
	case listingErr != nil && listingErr.Err != nil:
		r.printf("%s: %v\n", helpers.Colorize("Failed to download "+path, helpers.Red, r.color), listingErr.Err)
	default:
		r.printf("%s: %v\n", helpers.Colorize("Failed to download "+path, helpers.Red, r.color), err)
	}
}

func (r *Reporter) Skipped(itemType, name string) {
	r.mu.Lock()
	r.stats.Skipped++
	r.mu.Unlock()

	if name == "" {
		name = "unknown"
	}
	r.printf("%s %s for %s\n",
		helpers.Colorize("Skipping unsupported item type:", helpers.Yellow, r.color), itemType, name)
}

func (r *Reporter) Interrupted() {
	r.printf("%s\n", helpers.Colorize("Download interrupted.", helpers.Red, r.color))
}

func (r *Reporter) Completed() {
	r.printf("%s\n", helpers.Colorize("Download completed!", helpers.Bold, r.color))
}

func (r *Reporter) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Summary renders the run totals as a table.
func (r *Reporter) Summary() {
	s := r.Stats()

	r.mu.Lock()
	defer r.mu.Unlock()

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Result", "Count"})
	table.SetAutoFormatHeaders(false)
	table.Append([]string{"Files downloaded", strconv.Itoa(s.Downloaded)})
	if s.Cached > 0 {
		table.Append([]string{"From cache", strconv.Itoa(s.Cached)})
	}
	table.Append([]string{"Bytes written", helpers.FormatBytes(s.Bytes)})
	table.Append([]string{"Failed files", strconv.Itoa(s.FailedFiles)})
	table.Append([]string{"Failed directories", strconv.Itoa(s.FailedListings)})
	table.Append([]string{"Skipped items", strconv.Itoa(s.Skipped)})
	table.Render()
}
