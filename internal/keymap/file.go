package keymap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// layoutFile is the on-disk form of a custom layout:
//
//	name: mine
//	base: us
//	chars:
//	  "é": {key: 18, modifier: 100}
//	aliases:
//	  print: 99
type layoutFile struct {
	Name    string             `json:"name" yaml:"name" toml:"name"`
	Base    string             `json:"base" yaml:"base" toml:"base"`
	Chars   map[string]Mapping `json:"chars" yaml:"chars" toml:"chars"`
	Aliases map[string]uint16  `json:"aliases" yaml:"aliases" toml:"aliases"`
}

// LoadFile reads a layout from a YAML, TOML or JSON file, chosen by
// extension. Entries extend or override the base layout (default "us").
func LoadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}

	var lf layoutFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &lf)
	case ".toml":
		err = toml.Unmarshal(data, &lf)
	case ".json":
		err = json.Unmarshal(data, &lf)
	default:
		return nil, fmt.Errorf("layout %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	return lf.build(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

func (lf layoutFile) build(fallbackName string) (*Layout, error) {
	base, err := Get(lf.Base)
	if err != nil {
		return nil, err
	}
	name := lf.Name
	if name == "" {
		name = fallbackName
	}
	l := base.clone(name)
	for s, m := range lf.Chars {
		s = Normalize(s)
		if utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("layout %s: char entry %q is not a single character", name, s)
		}
		if m.Key == 0 {
			return nil, fmt.Errorf("layout %s: char entry %q has no key", name, s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		l.chars[r] = m
	}
	for a, k := range lf.Aliases {
		l.aliases[strings.ToLower(a)] = k
	}
	return l, nil
}

// Load returns the built-in layout called nameOrPath, or loads it from disk
// when it names an existing file.
func Load(nameOrPath string) (*Layout, error) {
	if _, err := os.Stat(nameOrPath); err == nil && strings.ContainsAny(nameOrPath, "./") {
		return LoadFile(nameOrPath)
	}
	return Get(nameOrPath)
}
