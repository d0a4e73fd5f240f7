package params

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadContext reads a YAML file holding fixed context values. The top level
// must be a mapping; an empty file yields an empty context.
func LoadContext(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read context file: %w", err)
	}
	var y any
	if err := yaml.Unmarshal(b, &y); err != nil {
		return nil, fmt.Errorf("invalid context file %s: %v", path, err)
	}
	if y == nil {
		return map[string]any{}, nil
	}
	m, ok := y.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid context file %s: top-level must be mapping", path)
	}
	return m, nil
}
