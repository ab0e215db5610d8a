package feed

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SourcesConfig is the YAML sources file:
//
//	feeds:
//	  - https://...
//	keywords:
//	  markets: [ ... ]
//	  ai_robotics: [ ... ]
type SourcesConfig struct {
	Feeds    []string `yaml:"feeds"`
	Keywords struct {
		Markets    []string `yaml:"markets"`
		AIRobotics []string `yaml:"ai_robotics"`
	} `yaml:"keywords"`
}

// LoadSources reads the feed URL list and keyword taxonomy from a YAML file.
func LoadSources(path string) (*SourcesConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg SourcesConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
