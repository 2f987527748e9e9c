package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// ParseContentLength returns 0 for an absent, malformed or negative header.
func ParseContentLength(header string) int64 {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	size, err := strconv.ParseInt(header, 10, 64)
	if err != nil || size < 0 {
		return 0
	}
	return size
}

func PartPath(outputPath string) string {
	return outputPath + PartSuffix
}

func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Clean removes leftover partial downloads from targetDir and returns how many were removed.
func Clean(targetDir string) (int, error) {
	entries, err := os.ReadDir(targetDir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), PartSuffix) {
			continue
		}
		filePath := filepath.Join(targetDir, entry.Name())
		if err := os.Remove(filePath); err != nil {
			return removed, err
		}
		log.Debug().Str("op", "utils/clean").Msgf("Removed %s", filePath)
		removed++
	}
	return removed, nil
}
