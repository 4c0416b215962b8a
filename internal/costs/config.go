package costs

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Constraints with a conventional meaning get a default; everything
// else must be spelled out in costs.toml so the objective is explicit.
func defaultWeight(kind Constraint) (weight Value, infinite, ok bool) {
	switch kind {
	case AssignedPreferred:
		return 0, false, true
	case AssignedImpossible:
		return 0, true, true
	case MismatchedInitialSolution:
		return 0, false, true
	}
	return 0, false, false
}

// ParseConfig reads a costs.toml document: a flat map from snake_case
// constraint names to an integer weight or "inf"/"infinity". Duplicate
// keys are rejected by the TOML grammar itself; unknown keys are
// rejected here.
func ParseConfig(raw []byte) (*Config, error) {
	var document map[string]any
	if err := toml.Unmarshal(raw, &document); err != nil {
		return nil, err
	}

	byName := make(map[string]Constraint, NumConstraints)
	for _, kind := range AllConstraints() {
		byName[kind.String()] = kind
	}

	config := NewConfig()
	seen := make(map[Constraint]bool, NumConstraints)

	for key, value := range document {
		kind, ok := byName[key]
		if !ok {
			return nil, fmt.Errorf("unknown constraint %q", key)
		}
		seen[kind] = true

		switch v := value.(type) {
		case int64:
			if v < 0 {
				return nil, fmt.Errorf("negative weight %d for %s", v, key)
			}
			config.Set(kind, Value(v))
		case string:
			if v != "inf" && v != "infinity" {
				return nil, fmt.Errorf("bad weight %q for %s, expected an integer or \"inf\"", v, key)
			}
			config.SetInfinite(kind)
		default:
			return nil, fmt.Errorf("bad weight %v for %s, expected an integer or \"inf\"", value, key)
		}
	}

	for _, kind := range AllConstraints() {
		if seen[kind] {
			continue
		}
		weight, infinite, ok := defaultWeight(kind)
		if !ok {
			return nil, fmt.Errorf("missing constraint %q", kind)
		}
		if infinite {
			config.SetInfinite(kind)
		} else {
			config.Set(kind, weight)
		}
	}

	return config, nil
}

// ReadConfig loads and parses the costs.toml at path.
func ReadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read costs toml at %s: %w", path, err)
	}
	config, err := ParseConfig(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cost config at %s: %w", path, err)
	}
	return config, nil
}
