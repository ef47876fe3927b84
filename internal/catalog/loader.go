package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var builtin []byte

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	data, err := Parse(builtin, "yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in catalog: %w", err)
	}
	return New(data)
}

// Load reads a catalog file (JSON or YAML, chosen by extension) and merges it
// over the built-in catalog. An empty path yields the built-in catalog.
func Load(path string) (*Catalog, error) {
	base, err := Parse(builtin, "yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in catalog: %w", err)
	}
	if path == "" {
		return New(base)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	overlay, err := Parse(raw, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return New(Merge(base, overlay))
}

// Parse decodes catalog data. format is "json"; anything else is read as YAML.
func Parse(raw []byte, format string) (Data, error) {
	var data Data
	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(raw, &data); err != nil {
			return Data{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
	default:
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return Data{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
	}
	return data, nil
}

// Merge overlays entries from overlay onto base key by key. A partition in
// overlay replaces the whole partition of the same name.
func Merge(base, overlay Data) Data {
	out := Data{
		Meals:        mergeMap(base.Meals, overlay.Meals),
		Partitions:   mergeMap(base.Partitions, overlay.Partitions),
		Ingredients:  mergeMap(base.Ingredients, overlay.Ingredients),
		Preparations: mergeMap(base.Preparations, overlay.Preparations),
		Seasons:      mergeMap(base.Seasons, overlay.Seasons),
		Foods:        mergeMap(base.Foods, overlay.Foods),
	}
	return out
}

func mergeMap[K comparable, V any](base, overlay map[K]V) map[K]V {
	out := make(map[K]V, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}
