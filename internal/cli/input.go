package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"srtm-backend/internal/stig/recommendations"
)

// inputFile is the on-disk input. Workflow exports decode as well since they
// carry the same requirements and designElements keys.
type inputFile struct {
	Requirements   []recommendations.Requirement   `json:"requirements"`
	DesignElements []recommendations.DesignElement `json:"designElements"`
}

func readInput(path string) (inputFile, error) {
	var in inputFile
	if path == "" {
		return in, fmt.Errorf("--input is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("read input: %w", err)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("decode input %q: %w", path, err)
	}
	return in, nil
}
