package main

import (
	"fmt"
	"os"

	"github.com/go-reckon/reckon"
	"gopkg.in/yaml.v3"
)

// config describes a set of analyzers to run over one JSONL input
type config struct {
	Input        string        `yaml:"input"`
	OutputDir    string        `yaml:"output_dir"`
	BatchSize    int           `yaml:"batch_size"`
	Workers      int           `yaml:"workers"`
	Vocabularies []vocabConfig `yaml:"vocabularies"`
}

// vocabConfig describes one vocabulary analyzer
type vocabConfig struct {
	Name               string   `yaml:"name"`
	Column             string   `yaml:"column"`
	Kind               string   `yaml:"kind"`
	TopK               *int     `yaml:"top_k"`
	FrequencyThreshold *float64 `yaml:"frequency_threshold"`
	StoreFrequency     bool     `yaml:"store_frequency"`
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config %s: %w", path, err)
	}
	var conf config
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	if conf.Input == "" {
		return nil, fmt.Errorf("config %s does not set input", path)
	}
	if conf.OutputDir == "" {
		conf.OutputDir = "."
	}
	for i, v := range conf.Vocabularies {
		if v.Name == "" || v.Column == "" {
			return nil, fmt.Errorf("vocabulary %d in %s needs both name and column", i, path)
		}
	}
	return &conf, nil
}

// spec converts a vocabConfig into a UniquesSpec
func (v *vocabConfig) spec() *reckon.UniquesSpec {
	spec := reckon.CreateUniquesSpec(v.Name)
	spec.StoreFrequency = v.StoreFrequency
	if v.TopK != nil {
		spec.TopK = *v.TopK
	}
	if v.FrequencyThreshold != nil {
		spec.FrequencyThreshold = *v.FrequencyThreshold
	}
	return spec
}

func parseKind(s string) (reckon.ElementKind, error) {
	switch s {
	case "string", "":
		return reckon.KindString, nil
	case "int":
		return reckon.KindInt, nil
	case "float":
		return reckon.KindFloat, nil
	default:
		return 0, fmt.Errorf("unknown element kind %q (want string, int or float)", s)
	}
}
