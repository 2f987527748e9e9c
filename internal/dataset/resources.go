package dataset

import (
	_ "embed"
	"fmt"

	"github.com/tanq16/recipeqa/internal/utils"
	"gopkg.in/yaml.v3"
)

//go:embed resources.yaml
var resourcesYAML []byte

// LoadResources returns the dataset's fixed resource list compiled into the binary.
func LoadResources() ([]utils.Resource, error) {
	return ParseResources(resourcesYAML)
}

// ParseResources decodes a resource list and checks that it ends with its only archive.
func ParseResources(data []byte) ([]utils.Resource, error) {
	var resources []utils.Resource
	if err := yaml.Unmarshal(data, &resources); err != nil {
		return nil, fmt.Errorf("error parsing resource list: %v", err)
	}
	if len(resources) == 0 {
		return nil, fmt.Errorf("resource list is empty")
	}
	archives := 0
	for i, resource := range resources {
		if resource.URL == "" {
			return nil, fmt.Errorf("missing link for entry %d", i+1)
		}
		switch resource.Type {
		case utils.ResourceJSON:
		case utils.ResourceArchive:
			archives++
			if i != len(resources)-1 {
				return nil, fmt.Errorf("archive entry %d must be the last entry", i+1)
			}
		default:
			return nil, fmt.Errorf("unknown type %q for entry %d", resource.Type, i+1)
		}
	}
	if archives != 1 {
		return nil, fmt.Errorf("expected exactly one archive entry, found %d", archives)
	}
	return resources, nil
}
