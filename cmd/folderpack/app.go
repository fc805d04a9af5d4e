// Package folderpack wires the URL prompt, the GitHub client and the tree
// walker into one download run.
package folderpack

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"folder-pack/config"
	"folder-pack/gh"
	"folder-pack/helpers"
	"folder-pack/log"
	"folder-pack/parse"
	"folder-pack/report"
	"folder-pack/walker"
)

const promptText = "Enter the GitHub folder URL:"

// App holds everything a run needs from its environment. Nothing below it
// reads process state on its own.
type App struct {
	In      io.Reader
	Out     io.Writer
	WorkDir string
	Config  config.Config

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	// ProgressOut receives per-file progress bars; nil disables them.
	ProgressOut io.Writer
	Color       bool
	Logger      *log.Logger
}

// Run prompts for a folder URL and downloads it below the working directory
// (or the configured output directory). Only an unusable URL or local root,
// or a cancelled ctx, is returned as an error; failures inside the tree are
// reported and the run still completes.
func (a *App) Run(ctx context.Context) error {
	logger := a.Logger
	if logger == nil {
		logger = log.Null
	}
	reporter := report.New(a.Out, a.Color)

	reporter.Prompt(promptText)
	input, err := readLine(a.In)
	if err != nil {
		return fmt.Errorf("reading URL: %w", err)
	}

	ref, err := parse.ParseRepoURL(input)
	if err != nil {
		if errors.Is(err, parse.ErrNotFolder) {
			fmt.Fprintln(a.Out, "Error: The URL must be a direct link to a folder (tree), not a file (blob).")
		} else {
			fmt.Fprintln(a.Out, "Error: Invalid GitHub URL.")
		}
		return err
	}
	logger.Debug("parsed folder reference",
		"owner", ref.Owner, "repo", ref.Repository, "branch", ref.Branch, log.KeyPath, ref.Path)

	baseDir := a.WorkDir
	if a.Config.OutputDir != "" {
		baseDir = a.Config.OutputDir
	}
	localDir := filepath.Join(baseDir, ref.FolderName())
	if err := helpers.EnsureDir(localDir); err != nil {
		fmt.Fprintf(a.Out, "Error: %v\n", err)
		return err
	}
	reporter.Start(localDir)

	client := a.client(logger)
	w := walker.New(client, client, reporter, a.walkerOptions(logger)...)
	w.Walk(ctx, ref, ref.Path, localDir)

	if err := ctx.Err(); err != nil {
		reporter.Interrupted()
		return err
	}

	if a.Config.Summary {
		reporter.Summary()
	}
	reporter.Completed()
	return nil
}

func (a *App) client(logger *log.Logger) *gh.Client {
	opts := []gh.Option{gh.WithLogger(logger)}
	if a.HTTPClient != nil {
		opts = append(opts, gh.WithHTTPClient(a.HTTPClient))
	}
	if a.Config.APIBaseURL != "" {
		opts = append(opts, gh.WithAPIBaseURL(a.Config.APIBaseURL))
	}
	if a.Config.UserAgent != "" {
		opts = append(opts, gh.WithUserAgent(a.Config.UserAgent))
	}
	if a.ProgressOut != nil && a.Config.ShowProgress {
		opts = append(opts, gh.WithProgress(a.ProgressOut, a.Config.ProgressBarStyle))
	}
	return gh.NewClient(opts...)
}

func (a *App) walkerOptions(logger *log.Logger) []walker.Option {
	opts := []walker.Option{
		walker.WithLogger(logger),
		walker.WithMaxDepth(a.Config.MaxDepth),
	}
	if a.Config.UseCache {
		if cache := gh.NewFileCache(a.Config.CacheDir); cache.Enabled() {
			opts = append(opts, walker.WithCache(cache))
		} else {
			logger.Warn("file cache unavailable, downloading everything")
		}
	}
	return opts
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
