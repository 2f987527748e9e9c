package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tanq16/recipeqa/internal/dataset"
	"github.com/tanq16/recipeqa/internal/output"
	"github.com/tanq16/recipeqa/internal/utils"
)

var (
	targetDir string
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:     "recipeqa",
	Short:   "Download the RecipeQA dataset (annotations and images)",
	Version: utils.Version,
	Args:    cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(debug)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cfg := utils.Config{
			TargetDir: targetDir,
			HTTPClientConfig: utils.HTTPClientConfig{
				UserAgent: utils.ToolUserAgent,
			},
		}
		output.PrintHeader("Fetching RecipeQA into " + targetDir)
		if err := dataset.Run(cmd.Context(), cfg); err != nil {
			log.Debug().Str("op", "cmd/root").Err(err).Msg("Run aborted")
			output.PrintError(err.Error())
			os.Exit(1)
		}
		output.PrintSuccess("Dataset ready in " + targetDir)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&targetDir, "target_dir", utils.DefaultTargetDir, "Target directory for the dataset")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(newCleanCmd())
}
