package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/recipeqa/internal/utils"
)

// Fetcher streams single remote resources into a target directory.
type Fetcher struct {
	client utils.HTTPDoer
}

func New(client utils.HTTPDoer) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch downloads link into targetDir, naming the file after the last path
// segment of the resolved (post-redirect) URL, and returns the local path.
// An existing file of the same name is overwritten. progress may be nil.
func (f *Fetcher) Fetch(ctx context.Context, link, targetDir string, progress utils.ProgressFunc) (string, error) {
	if err := validateURL(link); err != nil {
		return "", utils.NewNetworkError(link, err)
	}
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", utils.NewFilesystemError(targetDir, fmt.Errorf("error creating target directory: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", utils.NewNetworkError(link, fmt.Errorf("error creating GET request: %w", err))
	}
	log.Debug().Str("op", "fetcher/fetch").Msgf("Starting download of %s", link)
	resp, err := f.client.Do(req)
	if err != nil {
		return "", utils.NewNetworkError(link, fmt.Errorf("error executing GET request: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", utils.NewNetworkError(link, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	totalSize := utils.ParseContentLength(resp.Header.Get("Content-Length"))
	outputPath := filepath.Join(targetDir, fileNameFromURL(resp.Request.URL))
	log.Debug().Str("op", "fetcher/fetch").Int64("size", totalSize).Msgf("Writing %s", outputPath)

	progressCh := make(chan int64, 100)
	progressDone := make(chan struct{})
	go trackProgress(progressCh, progressDone, totalSize, progress)

	written, err := performSimpleDownload(resp.Body, outputPath, progressCh)
	close(progressCh)
	<-progressDone
	if err != nil {
		return "", err
	}
	if totalSize > 0 && written != totalSize {
		return "", utils.NewNetworkError(link, fmt.Errorf("size mismatch: got %d bytes, expected %d", written, totalSize))
	}
	if err := os.Rename(utils.PartPath(outputPath), outputPath); err != nil {
		return "", utils.NewFilesystemError(outputPath, fmt.Errorf("error renaming (finalizing) output file: %w", err))
	}
	log.Info().Str("op", "fetcher/fetch").Msgf("Downloaded %s (%s)", outputPath, utils.FormatBytes(uint64(written)))
	return outputPath, nil
}

func trackProgress(progressCh <-chan int64, done chan<- struct{}, totalSize int64, progress utils.ProgressFunc) {
	defer close(done)
	var totalDownloaded, lastReported int64
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case bytes, ok := <-progressCh:
			if !ok {
				if progress != nil {
					progress(totalDownloaded, totalSize)
				}
				return
			}
			totalDownloaded += bytes
		case <-ticker.C:
			if totalDownloaded > lastReported && progress != nil {
				progress(totalDownloaded, totalSize)
				lastReported = totalDownloaded
			}
		}
	}
}

func validateURL(link string) error {
	if link == "" {
		return fmt.Errorf("empty URL")
	}
	parsedURL, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %q", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("missing host in URL")
	}
	return nil
}

func fileNameFromURL(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return utils.FallbackFileName
	}
	return name
}
