package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder collects configuration layers in priority order (first
// appended wins under mergo's no-override merge) and folds them into one
// validated StructuredConfig. Parse errors are accumulated rather than
// failing fast, so build reports every broken source at once.
type configBuilder struct {
	layers []*StructuredConfig
	errs   []error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{}
}

// build merges the collected layers and validates the result. Any error
// accumulated while collecting layers aborts the build.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("config assembly failed: %w", errors.Join(b.errs...))
	}

	merged := new(StructuredConfig)
	for _, layer := range b.layers {
		if err := mergo.Merge(merged, layer); err != nil {
			return nil, fmt.Errorf("config layer merge failed: %w", err)
		}
	}

	return merged, merged.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	layer := new(StructuredConfig)
	if err := parseEnv(layer); err != nil {
		b.errs = append(b.errs, err)
		return b
	}

	b.layers = append(b.layers, layer)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	b.layers = append(b.layers, ParseFlags())
	return b
}

// withJSON loads the optional JSON file when an earlier layer (env or flags)
// named one. No path means no JSON layer.
func (b *configBuilder) withJSON() *configBuilder {
	path := b.jsonPath()
	if path == "" {
		return b
	}

	layer, err := parseJSON(path)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}

	b.layers = append(b.layers, layer)
	return b
}

func (b *configBuilder) jsonPath() string {
	for _, layer := range b.layers {
		if layer.JSONFilePath != "" {
			return layer.JSONFilePath
		}
	}

	return ""
}
