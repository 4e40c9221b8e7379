package record

import (
	"encoding/json"
	"fmt"
	"os"
)

// Save writes the recording as indented JSON, overwriting any prior file at
// path.
func (r *Recording) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal recording %s: %w", r.RunID, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write recording to %s: %w", path, err)
	}
	return nil
}

// Load reads a recording previously written by Save.
func Load(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recording %s: %w", path, err)
	}
	var r Recording
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse recording %s: %w", path, err)
	}
	return &r, nil
}
