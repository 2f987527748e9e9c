package fetcher

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/recipeqa/internal/utils"
)

// performSimpleDownload writes body to the .part file next to outputPath,
// truncating any leftover from an earlier run. The caller renames it.
func performSimpleDownload(body io.Reader, outputPath string, progressCh chan<- int64) (int64, error) {
	tempOutputPath := utils.PartPath(outputPath)
	outFile, err := os.OpenFile(tempOutputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, utils.NewFilesystemError(tempOutputPath, fmt.Errorf("error creating output file: %w", err))
	}
	defer outFile.Close()

	buffer := make([]byte, utils.DefaultBufferSize)
	var totalDownloaded int64
	for {
		bytesRead, readErr := body.Read(buffer)
		if bytesRead > 0 {
			if _, writeErr := outFile.Write(buffer[:bytesRead]); writeErr != nil {
				return totalDownloaded, utils.NewFilesystemError(tempOutputPath, fmt.Errorf("error writing to output file: %w", writeErr))
			}
			totalDownloaded += int64(bytesRead)
			progressCh <- int64(bytesRead)
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return totalDownloaded, utils.NewNetworkError(outputPath, fmt.Errorf("error reading response body: %w", readErr))
		}
	}
	if err := outFile.Sync(); err != nil {
		return totalDownloaded, utils.NewFilesystemError(tempOutputPath, fmt.Errorf("error syncing output file: %w", err))
	}
	if err := outFile.Close(); err != nil {
		return totalDownloaded, utils.NewFilesystemError(tempOutputPath, fmt.Errorf("error closing output file: %w", err))
	}
	log.Debug().Str("op", "fetcher/simple-downloader").Int64("downloaded", totalDownloaded).Msg("Simple download completed")
	return totalDownloaded, nil
}
