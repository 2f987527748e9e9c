package utils

// ProgressFunc receives the running byte count and the declared total (0 when unknown).
type ProgressFunc func(downloaded, total int64)

type ResourceType string

const (
	ResourceJSON    ResourceType = "json"
	ResourceArchive ResourceType = "archive"
)

type Resource struct {
	URL  string       `yaml:"link"`
	Type ResourceType `yaml:"type"`
}

type Config struct {
	TargetDir        string
	RunID            string
	HTTPClientConfig HTTPClientConfig
}
