package secrets

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"mcpsync/internal/constants"
)

// Store is the flat mapping of symbolic secret name to literal value.
type Store map[string]string

// LoadStore reads a secrets store, returning an empty store when the file
// does not exist.
func LoadStore(path string) (Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s is not valid JSON: %w", path, err)
	}
	if s == nil {
		s = Store{}
	}
	return s, nil
}

// Merge folds newly discovered secrets into the store. Merging is additive:
// unknown keys are added and known keys are overwritten only by the incoming
// values. Returns the number of keys added or changed.
func (s Store) Merge(incoming Store) int {
	changed := 0
	for name, value := range incoming {
		if existing, ok := s[name]; !ok || existing != value {
			changed++
		}
		s[name] = value
	}
	return changed
}

// Save writes the store with restrictive permissions; it holds live secrets.
func (s Store) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode secrets: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, constants.SecretFilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Names returns the secret names in sorted order, for stable reporting.
func (s Store) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
