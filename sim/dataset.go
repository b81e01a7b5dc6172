package sim

import (
	"fmt"
	"io"
	"os"

	slam "github.com/milosgajdos/go-slam"
	"gopkg.in/yaml.v3"
)

// Dataset is a recorded SLAM run
type Dataset struct {
	// Config is SLAM configuration of the run
	Config slam.Config `yaml:"config"`
	// Landmarks are true landmark positions
	Landmarks [][]float64 `yaml:"landmarks,omitempty"`
	// Truth are true robot poses
	Truth [][]float64 `yaml:"truth,omitempty"`
	// Steps are recorded motions and measurements
	Steps []slam.Step `yaml:"steps"`
}

// Load decodes YAML dataset from r and returns it.
// It returns error if the dataset can't be decoded or its config is invalid.
func Load(r io.Reader) (*Dataset, error) {
	d := &Dataset{}
	if err := yaml.NewDecoder(r).Decode(d); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	if err := d.Config.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// LoadFile loads YAML dataset from file at path.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Save encodes d as YAML into w.
func (d *Dataset) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	return enc.Close()
}

// SaveFile saves d as YAML into file at path.
func (d *Dataset) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := d.Save(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
