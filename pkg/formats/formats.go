// Package formats decodes the asset file formats the viewer consumes:
// binary glTF scenes and Radiance RGBE panoramas.
package formats

import (
	"fmt"
	"os"
)

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
