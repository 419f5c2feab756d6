package reference

import (
	"bytes"
	_ "embed" // embedded WHO dataset.
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed data/who.toml
var whoTOML []byte

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the embedded WHO tables. It panics if the embedded dataset
// is malformed.
func Default() *Tables {
	defaultOnce.Do(func() {
		tables, err := Decode(whoTOML, FormatTOML)
		if err != nil {
			panic(fmt.Sprintf("embedded reference tables: %v", err))
		}
		defaultTables = tables
	})
	return defaultTables
}

// Format identifies a reference file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from a file extension. Anything that is
// not .yaml or .yml is read as TOML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads and validates a reference table file.
func Load(path string) (*Tables, error) {
	if path == "" {
		return nil, fmt.Errorf("reference table path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference tables: %w", err)
	}
	tables, err := Decode(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tables, nil
}

// Decode parses a reference dataset in the given format and validates it.
func Decode(data []byte, format Format) (*Tables, error) {
	var set Set
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&set); err != nil {
			return nil, fmt.Errorf("failed to decode reference tables: %w", err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&set)
		if err != nil {
			return nil, fmt.Errorf("failed to decode reference tables: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown reference table key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported reference table format %q", format)
	}
	return New(set)
}
