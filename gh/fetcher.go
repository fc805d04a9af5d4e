package gh

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"folder-pack/helpers"
	"folder-pack/log"
)

// FetchFile downloads downloadURL into dest, streaming the body to disk in
// fixed-size chunks. The parent directory of dest is created if needed. The
// destination file is only created once the server has answered with a
// success status.
func (c *Client) FetchFile(ctx context.Context, downloadURL, dest string) (int64, error) {
	if err := helpers.EnsureDir(filepath.Dir(dest)); err != nil {
		return 0, err
	}

	req, err := c.newRequest(ctx, downloadURL)
	if err != nil {
		return 0, fmt.Errorf("creating request for %s: %w", downloadURL, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("HTTP %s for url: %s", resp.Status, downloadURL)
	}

	var body io.Reader = resp.Body
	if c.progress != nil {
		bar := helpers.NewFileBar(c.progress, filepath.Base(dest), resp.ContentLength, c.progressStyle)
		defer bar.Finish()
		body = bar.NewProxyReader(resp.Body)
	}

	n, err := helpers.SaveFile(dest, body)
	if err != nil {
		return n, err
	}

	c.log.Debug("file saved", log.KeyFile, dest, log.KeyBytes, n)
	return n, nil
}
