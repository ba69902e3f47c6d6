package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seeds.yml
var seedsYML []byte

type seedFile struct {
	Seeds []Seed `yaml:"seeds"`
}

// Load parses and validates the embedded seed catalog, preserving file order.
func Load() ([]Seed, error) {
	var file seedFile
	if err := yaml.Unmarshal(seedsYML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	if len(file.Seeds) == 0 {
		return nil, fmt.Errorf("seed catalog is empty")
	}

	seen := make(map[int64]string, len(file.Seeds))
	for i, seed := range file.Seeds {
		if err := validate(seed); err != nil {
			return nil, fmt.Errorf("invalid seed at index %d: %w", i, err)
		}
		if title, ok := seen[seed.ID]; ok {
			return nil, fmt.Errorf("duplicate seed id %d (%q and %q)", seed.ID, title, seed.Title)
		}
		seen[seed.ID] = seed.Title
	}

	return file.Seeds, nil
}

func validate(seed Seed) error {
	if seed.ID <= 0 {
		return fmt.Errorf("seed id must be positive, got %d", seed.ID)
	}
	if seed.Title == "" {
		return fmt.Errorf("seed title is required")
	}
	if seed.Content == "" {
		return fmt.Errorf("seed content is required")
	}
	if seed.URL == "" {
		return fmt.Errorf("seed url is required")
	}
	return nil
}
