package loader

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/valvenet/network"
)

// document is the YAML input layout.
type document struct {
	Valves []network.Valve `yaml:"valves"`
}

// ParseYAML decodes a YAML valve list. An empty document yields no valves.
func ParseYAML(r io.Reader) ([]network.Valve, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: yaml: %v", ErrSyntax, err)
	}
	return doc.Valves, nil
}
