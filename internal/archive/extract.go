package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/recipeqa/internal/utils"
)

type Result struct {
	Entries int
	Files   int
	Size    int64
}

// EntryFunc is called after each entry is written, with the running and total entry counts.
type EntryFunc func(done, total int)

// Extract expands every entry of the zip at archivePath under targetDir,
// overwriting existing files. On error, entries already written stay in place
// and the archive itself is never touched.
func Extract(archivePath, targetDir string, onEntry EntryFunc) (Result, error) {
	var result Result
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return result, utils.NewArchiveError(archivePath, fmt.Errorf("error opening archive: %w", err))
	}
	defer reader.Close()

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return result, utils.NewArchiveError(archivePath, fmt.Errorf("error creating target directory: %w", err))
	}
	total := len(reader.File)
	log.Debug().Str("op", "archive/extract").Int("entries", total).Msgf("Extracting %s", archivePath)
	for i, file := range reader.File {
		written, err := extractFile(file, targetDir)
		if err != nil {
			return result, utils.NewArchiveError(archivePath, fmt.Errorf("failed to extract %s: %w", file.Name, err))
		}
		result.Entries++
		if !file.FileInfo().IsDir() {
			result.Files++
			result.Size += written
		}
		if onEntry != nil {
			onEntry(i+1, total)
		}
	}
	log.Info().Str("op", "archive/extract").Msgf("Extracted %d entries (%s) into %s", result.Entries, utils.FormatBytes(uint64(result.Size)), targetDir)
	return result, nil
}

func extractFile(file *zip.File, targetDir string) (int64, error) {
	destPath, err := entryPath(targetDir, file.Name)
	if err != nil {
		return 0, err
	}
	if file.FileInfo().IsDir() {
		return 0, os.MkdirAll(destPath, 0755)
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return 0, fmt.Errorf("error creating directory: %w", err)
	}
	src, err := file.Open()
	if err != nil {
		return 0, fmt.Errorf("error opening entry: %w", err)
	}
	defer src.Close()
	dst, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("error creating file: %w", err)
	}
	written, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		return written, fmt.Errorf("error writing file: %w", err)
	}
	return written, dst.Close()
}

// entryPath resolves an entry name under targetDir and rejects names that escape it.
func entryPath(targetDir, name string) (string, error) {
	cleanTarget := filepath.Clean(targetDir)
	destPath := filepath.Join(cleanTarget, filepath.FromSlash(name))
	rel, err := filepath.Rel(cleanTarget, destPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid entry path: %s", name)
	}
	return destPath, nil
}
