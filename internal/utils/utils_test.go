package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseContentLength(t *testing.T) {
	cases := map[string]int64{
		"":        0,
		"1024":    1024,
		" 42 ":    42,
		"-5":      0,
		"abc":     0,
		"12bytes": 0,
	}
	for header, want := range cases {
		require.Equal(t, want, ParseContentLength(header), header)
	}
}

func TestFetchErrorCategories(t *testing.T) {
	netErr := fmt.Errorf("fetching train.json: %w", NewNetworkError("train.json", errors.New("connection reset")))
	require.ErrorIs(t, netErr, ErrNetwork)
	require.NotErrorIs(t, netErr, ErrFilesystem)
	require.NotErrorIs(t, netErr, ErrArchive)

	var fetchErr *FetchError
	require.ErrorAs(t, netErr, &fetchErr)
	require.Equal(t, CategoryNetwork, fetchErr.Category)
	require.Contains(t, fetchErr.Error(), "[NETWORK] train.json: connection reset")

	require.ErrorIs(t, NewFilesystemError("data", os.ErrPermission), ErrFilesystem)
	require.ErrorIs(t, NewFilesystemError("data", os.ErrPermission), os.ErrPermission)
	require.ErrorIs(t, NewArchiveError("images.zip", errors.New("bad header")), ErrArchive)
}

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "512 B", FormatBytes(512))
	require.Equal(t, "1.00 KB", FormatBytes(1024))
	require.Equal(t, "1.50 MB", FormatBytes(1024*1024*3/2))
}

func TestCleanRemovesOnlyPartFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "val.json"+PartSuffix), []byte("{"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images.zip"+PartSuffix), []byte("PK"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0755))

	removed, err := Clean(dir)
	require.NoError(t, err)
	require.Equal(t, 2, removed)
	require.FileExists(t, filepath.Join(dir, "train.json"))
	require.DirExists(t, filepath.Join(dir, "images"))
	require.NoFileExists(t, filepath.Join(dir, "val.json"+PartSuffix))
}

func TestCleanMissingDirectory(t *testing.T) {
	removed, err := Clean(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	require.Zero(t, removed)
}
