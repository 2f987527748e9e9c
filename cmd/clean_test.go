package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tanq16/recipeqa/internal/utils"
)

func TestCleanCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images.zip"+utils.PartSuffix), []byte("PK"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train.json"), []byte("{}"), 0644))

	rootCmd.SetArgs([]string{"clean", dir})
	require.NoError(t, rootCmd.Execute())

	require.NoFileExists(t, filepath.Join(dir, "images.zip"+utils.PartSuffix))
	require.FileExists(t, filepath.Join(dir, "train.json"))
}

func TestTargetDirFlagDefault(t *testing.T) {
	flag := rootCmd.Flags().Lookup("target_dir")
	require.NotNil(t, flag)
	require.Equal(t, "data", flag.DefValue)
}
