package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tanq16/recipeqa/internal/output"
	"github.com/tanq16/recipeqa/internal/utils"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [target_dir]",
		Short: "Remove partial downloads left by an aborted run",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			dir := utils.DefaultTargetDir
			if len(args) > 0 {
				dir = args[0]
			}
			removed, err := utils.Clean(dir)
			if err != nil {
				output.PrintError(fmt.Sprintf("Error cleaning up partial downloads: %v", err))
				os.Exit(1)
			}
			output.PrintSuccess(fmt.Sprintf("Removed %d partial download(s) from %s", removed, dir))
		},
	}
}
