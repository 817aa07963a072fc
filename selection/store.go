package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// ErrNotFound is returned when a saved selection does not exist.
var ErrNotFound = errors.New("selection not found")

// Store persists named selections as JSON values in a diskv directory.
type Store struct {
	d *diskv.Diskv
}

// NewStore opens (or lazily creates) a store rooted at basePath.
func NewStore(basePath string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

// Key normalizes a selection name to the characters allowed in store keys.
func Key(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.' || r == '/':
			b.WriteRune('-')
		}
	}
	return b.String()
}

func (s *Store) Save(sel Selection) error {
	key := Key(sel.Name)
	if key == "" {
		return fmt.Errorf("selection name %q has no usable characters", sel.Name)
	}
	data, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("save selection %s: %w", key, err)
	}
	return nil
}

func (s *Store) Get(name string) (Selection, error) {
	key := Key(name)
	if key == "" || !s.d.Has(key) {
		return Selection{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	data, err := s.d.Read(key)
	if err != nil {
		return Selection{}, fmt.Errorf("read selection %s: %w", key, err)
	}
	var sel Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		return Selection{}, fmt.Errorf("decode selection %s: %w", key, err)
	}
	return sel, nil
}

// List returns every saved selection ordered by key. Unreadable entries are skipped.
func (s *Store) List(ctx context.Context) ([]Selection, error) {
	var keys []string
	for key := range s.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)

	out := make([]Selection, 0, len(keys))
	for _, key := range keys {
		sel, err := s.Get(key)
		if err != nil {
			continue
		}
		out = append(out, sel)
	}
	return out, nil
}

func (s *Store) Delete(name string) error {
	key := Key(name)
	if key == "" || !s.d.Has(key) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s.d.Erase(key)
}
