package verdict

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// workflowFile is the on-disk shape of a workflow definition document.
type workflowFile struct {
	Workflows []Workflow `json:"workflows" yaml:"workflows"`
}

// ParseWorkflowsJSON parses workflow definitions from JSON. The document
// is either a list of workflows or an object with a "workflows" key.
func ParseWorkflowsJSON(data []byte) ([]Workflow, error) {
	var ws []Workflow
	if err := json.Unmarshal(data, &ws); err == nil {
		return validateAll(ws)
	}

	var f workflowFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing workflow definitions: %w", err)
	}
	return validateAll(f.Workflows)
}

// ParseWorkflowsYAML parses workflow definitions from a YAML document with
// a top-level "workflows" key.
func ParseWorkflowsYAML(data []byte) ([]Workflow, error) {
	var f workflowFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing workflow definitions: %w", err)
	}
	return validateAll(f.Workflows)
}

// LoadWorkflowsFile reads workflow definitions from a JSON (.json) or YAML
// (.yaml, .yml) file.
func LoadWorkflowsFile(path string) ([]Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseWorkflowsJSON(data)
	case ".yaml", ".yml":
		return ParseWorkflowsYAML(data)
	default:
		return nil, fmt.Errorf("unsupported workflow file extension %q", filepath.Ext(path))
	}
}

func validateAll(ws []Workflow) ([]Workflow, error) {
	for _, w := range ws {
		if err := w.Validate(); err != nil {
			return nil, err
		}
	}
	return ws, nil
}
