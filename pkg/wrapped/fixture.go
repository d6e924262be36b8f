package wrapped

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSource serves a payload from a JSON or YAML file instead of the
// backend, for demos and offline runs. The file is read on every Fetch.
type FileSource struct {
	Path string
}

// Fetch decodes the file. An empty user in the file is filled with username.
func (f FileSource) Fetch(ctx context.Context, username string) (*Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("wrapped: read payload file: %w", err)
	}
	p, err := DecodeFile(f.Path, data)
	if err != nil {
		return nil, err
	}
	if p.User == "" {
		p.User = username
	}
	if err := p.Check(); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeFile decodes data as YAML for .yaml/.yml paths and JSON otherwise.
func DecodeFile(path string, data []byte) (*Payload, error) {
	var p Payload
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("wrapped: decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("wrapped: decode json: %w", err)
		}
	}
	return &p, nil
}
