package element

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/formgrid/pkg/errors"
)

//go:embed catalog.toml
var builtinCatalog []byte

type catalogFile struct {
	Element map[string]Definition `toml:"element"`
}

// Decode reads a TOML catalog from r. Every [element.<key>] table becomes
// one definition keyed by <key>. The result is not validated; pass it to
// [Registry.Replace] or [Validate].
func Decode(r io.Reader) (map[string]Definition, error) {
	var cf catalogFile
	if _, err := toml.NewDecoder(r).Decode(&cf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeValidation, err, "decode element catalog")
	}
	return cf.Element, nil
}

// Load decodes and validates a TOML catalog into a new registry.
func Load(r io.Reader) (*Registry, error) {
	defs, err := Decode(r)
	if err != nil {
		return nil, err
	}
	reg := &Registry{defs: map[string]Definition{}}
	if err := reg.Replace(defs); err != nil {
		return nil, err
	}
	return reg, nil
}

// LoadFile loads a TOML catalog from path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns a fresh registry holding the built-in catalog.
func Default() *Registry {
	reg, err := Load(bytes.NewReader(builtinCatalog))
	if err != nil {
		panic(fmt.Sprintf("element: built-in catalog is invalid: %v", err))
	}
	return reg
}
