package narrative

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

// ParseBank reads a YAML catalog of the form
//
//	templates:
//	  - id: saturn-opposition-sun
//	    transit_planet: Saturn
//	    omen: ...
func ParseBank(data []byte) (*Bank, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Templates) == 0 {
		return nil, fmt.Errorf("parse catalog: no templates")
	}
	return NewBank(f.Templates)
}

// LoadBank reads a YAML catalog from path.
func LoadBank(path string) (*Bank, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseBank(b)
}
