package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store is a flat string key/value file such as keybindings.cfg. Keys are
// written sorted, each preceded by its comment when one is known.
type Store struct {
	path     string
	values   map[string]string
	comments map[string]string
}

// NewStore creates an empty store that saves to path.
func NewStore(path string) *Store {
	return &Store{
		path:     path,
		values:   make(map[string]string),
		comments: make(map[string]string),
	}
}

// LoadStore reads a store from path. A missing file yields an empty store.
func LoadStore(path string) (*Store, error) {
	s := NewStore(path)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.decode(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) decode(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of keys to values", root.Line)
	}

	// a comment above the first key can be attached to the document or the
	// mapping instead of the key
	leading := trimComment(doc.HeadComment + "\n" + root.HeadComment)

	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of %q is not a string", v.Line, k.Value)
		}
		s.values[k.Value] = v.Value
		c := trimComment(k.HeadComment)
		if c == "" && i == 0 {
			c = leading
		}
		if c != "" {
			s.comments[k.Value] = c
		}
	}
	return nil
}

func trimComment(c string) string {
	lines := strings.Split(c, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l), "#"))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Path returns the file the store saves to.
func (s *Store) Path() string {
	return s.path
}

// GetString returns the value for key. An absent key is recorded with def
// so that a later Save writes the default out. A non-empty comment replaces
// the stored comment for key.
func (s *Store) GetString(key, def, comment string) string {
	if comment != "" {
		s.comments[key] = comment
	}
	if v, ok := s.values[key]; ok {
		return v
	}
	s.values[key] = def
	return def
}

// SetString sets the value for key.
func (s *Store) SetString(key, value string) {
	s.values[key] = value
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Delete removes key and its comment.
func (s *Store) Delete(key string) {
	delete(s.values, key)
	delete(s.comments, key)
}

// Keys returns every key in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Save writes the store to its path.
func (s *Store) Save() error {
	return s.SaveTo(s.path)
}

// SaveTo writes the store to a specific path.
func (s *Store) SaveTo(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := s.encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Store) encode() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range s.Keys() {
		key := &yaml.Node{
			Kind:        yaml.ScalarNode,
			Tag:         "!!str",
			Value:       k,
			HeadComment: s.comments[k],
		}
		value := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: s.values[k],
			Style: yaml.DoubleQuotedStyle,
		}
		root.Content = append(root.Content, key, value)
	}

	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	return yaml.Marshal(doc)
}
