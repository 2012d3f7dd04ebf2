package run

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const MetadataFile = "benchmark_run_metadata.yaml"

var requiredMetadataKeys = []string{"username", "title", "repository", "commit", "command"}

// MissingFieldError reports a required key absent from a metadata file.
type MissingFieldError struct {
	Key  string
	File string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing key %s in metadata file: %s", e.Key, e.File)
}

// LoadMetadata reads the run-level metadata file. Every field is required.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run metadata: %w", err)
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse run metadata %s: %w", path, err)
	}

	values := make(map[string]string, len(requiredMetadataKeys))
	for _, key := range requiredMetadataKeys {
		node, ok := raw[key]
		if !ok {
			return nil, &MissingFieldError{Key: key, File: path}
		}
		if node.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("key %s in metadata file %s is not a scalar", key, path)
		}
		if node.Tag == "!!null" {
			continue
		}
		// Raw scalar text, so commit hashes such as 1e10 are not reinterpreted as numbers.
		values[key] = node.Value
	}

	return &Metadata{
		Username:   values["username"],
		Title:      values["title"],
		Repository: values["repository"],
		Commit:     values["commit"],
		Command:    values["command"],
	}, nil
}
