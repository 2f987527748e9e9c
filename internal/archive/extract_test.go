package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tanq16/recipeqa/internal/utils"
)

type entry struct {
	name string
	body string
}

func writeZip(t *testing.T, path string, entries []entry) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		if e.body != "" {
			_, err = w.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestExtractReproducesEntryTree(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "images.zip")
	entries := []entry{
		{name: "images/"},
		{name: "images/images-qa/train/images-qa/"},
		{name: "images/images-qa/train/images-qa/pancakes_0.jpg", body: "jpeg-0"},
		{name: "images/images-qa/train/images-qa/pancakes_1.jpg", body: "jpeg-1"},
		{name: "images/images-qa/val/images-qa/soup_0.jpg", body: "jpeg-2"},
		{name: "README.txt", body: "recipeqa images"},
	}
	writeZip(t, archivePath, entries)

	var calls, lastTotal int
	result, err := Extract(archivePath, dir, func(done, total int) {
		calls++
		lastTotal = total
	})
	require.NoError(t, err)
	require.Equal(t, len(entries), result.Entries)
	require.Equal(t, 4, result.Files)
	require.Equal(t, int64(len("jpeg-0")*3+len("recipeqa images")), result.Size)
	require.Equal(t, len(entries), calls)
	require.Equal(t, len(entries), lastTotal)

	for _, e := range entries {
		p := filepath.Join(dir, filepath.FromSlash(e.name))
		if e.body == "" {
			require.DirExists(t, p)
			continue
		}
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		require.Equal(t, e.body, string(data))
	}
	require.FileExists(t, archivePath)
}

func TestExtractOverwritesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "images.zip")
	writeZip(t, archivePath, []entry{{name: "images/a.jpg", body: "new"}})

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "a.jpg"), []byte("old contents that are longer"), 0644))

	_, err := Extract(archivePath, dir, nil)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "images", "a.jpg"))
	require.NoError(t, err)
	require.Equal(t, "new", string(data))
}

func TestExtractInvalidArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "images.zip")
	require.NoError(t, os.WriteFile(archivePath, []byte("<html>not a zip</html>"), 0644))

	_, err := Extract(archivePath, dir, nil)
	require.ErrorIs(t, err, utils.ErrArchive)
	require.FileExists(t, archivePath)
}

func TestExtractRejectsPathTraversal(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "data")
	require.NoError(t, os.MkdirAll(dir, 0755))
	archivePath := filepath.Join(dir, "images.zip")
	writeZip(t, archivePath, []entry{
		{name: "images/ok.jpg", body: "ok"},
		{name: "../escaped.txt", body: "nope"},
	})

	_, err := Extract(archivePath, dir, nil)
	require.ErrorIs(t, err, utils.ErrArchive)
	require.NoFileExists(t, filepath.Join(root, "escaped.txt"))
}

func TestEntryPath(t *testing.T) {
	got, err := entryPath(".", "images/a.jpg")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("images", "a.jpg"), got)

	_, err = entryPath("data", "../../etc/passwd")
	require.Error(t, err)

	got, err = entryPath("data", "/abs/a.jpg")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("data", "abs", "a.jpg"), got)
}
