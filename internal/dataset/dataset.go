package dataset

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tanq16/recipeqa/internal/archive"
	"github.com/tanq16/recipeqa/internal/fetcher"
	"github.com/tanq16/recipeqa/internal/output"
	"github.com/tanq16/recipeqa/internal/utils"
)

// Pipeline downloads every resource in order, then expands and removes the archive.
// Any failure aborts the remaining steps; nothing already written is rolled back.
type Pipeline struct {
	Resources []utils.Resource
	Fetcher   *fetcher.Fetcher
	Output    *output.Manager
	RunID     string
}

func NewPipeline(cfg utils.Config) (*Pipeline, error) {
	resources, err := LoadResources()
	if err != nil {
		return nil, err
	}
	runID := cfg.RunID
	if runID == "" {
		runID = uuid.New().String()
	}
	return &Pipeline{
		Resources: resources,
		Fetcher:   fetcher.New(utils.NewHTTPClient(cfg.HTTPClientConfig)),
		Output:    output.NewManager(),
		RunID:     runID,
	}, nil
}

// Run fetches the dataset into cfg.TargetDir using the embedded resource list.
func Run(ctx context.Context, cfg utils.Config) error {
	pipeline, err := NewPipeline(cfg)
	if err != nil {
		return err
	}
	return pipeline.Run(ctx, cfg.TargetDir)
}

func (p *Pipeline) Run(ctx context.Context, targetDir string) error {
	logger := utils.GetLogger("dataset").With().Str("run", p.RunID).Logger()
	logger.Debug().Str("target", targetDir).Int("resources", len(p.Resources)).Msg("Starting dataset download")
	p.Output.StartDisplay()
	defer p.Output.StopDisplay()

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return utils.NewFilesystemError(targetDir, fmt.Errorf("error creating target directory: %w", err))
	}

	var archivePath string
	for _, resource := range p.Resources {
		localPath, err := p.fetchResource(ctx, logger, resource, targetDir)
		if err != nil {
			return err
		}
		if resource.Type == utils.ResourceArchive {
			archivePath = localPath
		}
	}
	if archivePath == "" {
		return fmt.Errorf("no archive resource configured")
	}
	return p.expandArchive(logger, archivePath, targetDir)
}

func (p *Pipeline) fetchResource(ctx context.Context, logger zerolog.Logger, resource utils.Resource, targetDir string) (string, error) {
	label := path.Base(resource.URL)
	id := p.Output.Register(label)
	p.Output.SetMessage(id, fmt.Sprintf("Downloading %s", label))
	localPath, err := p.Fetcher.Fetch(ctx, resource.URL, targetDir, func(downloaded, total int64) {
		p.Output.UpdateProgress(id, downloaded, total)
	})
	if err != nil {
		logger.Error().Err(err).Str("url", resource.URL).Msg("Download failed")
		p.Output.ReportError(id, err)
		return "", err
	}
	p.Output.Complete(id, fmt.Sprintf("Downloaded %s", localPath))
	return localPath, nil
}

// expandArchive leaves the archive on disk when extraction fails.
func (p *Pipeline) expandArchive(logger zerolog.Logger, archivePath, targetDir string) error {
	id := p.Output.Register("extract " + path.Base(archivePath))
	p.Output.SetMessage(id, fmt.Sprintf("Extracting %s", archivePath))
	result, err := archive.Extract(archivePath, targetDir, func(done, total int) {
		p.Output.UpdateCount(id, done, total, "entries")
	})
	if err != nil {
		logger.Error().Err(err).Str("archive", archivePath).Msg("Extraction failed")
		p.Output.ReportError(id, err)
		return err
	}
	if err := os.Remove(archivePath); err != nil {
		rmErr := utils.NewFilesystemError(archivePath, fmt.Errorf("error removing archive: %w", err))
		p.Output.ReportError(id, rmErr)
		return rmErr
	}
	logger.Debug().Str("archive", archivePath).Msg("Archive removed")
	p.Output.Complete(id, fmt.Sprintf("Extracted %d files (%s)", result.Files, utils.FormatBytes(uint64(result.Size))))
	return nil
}
