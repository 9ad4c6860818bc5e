// Package taxonomy provides in-process category sources for the settings
// group. Persistent categories live in the store package.
package taxonomy

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-publishing/pkg/settings"
)

// Static is an in-memory taxonomy. It is safe for concurrent use.
type Static struct {
	mu         sync.RWMutex
	categories []settings.Category
	index      map[string]struct{}
}

var _ settings.Taxonomy = (*Static)(nil)

// NewStatic builds a taxonomy from categories, keeping their order. Duplicate
// or blank ids are rejected.
func NewStatic(categories ...settings.Category) (*Static, error) {
	s := &Static{index: make(map[string]struct{}, len(categories))}
	for _, category := range categories {
		if err := s.add(category); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustStatic mirrors NewStatic but panics on error.
func MustStatic(categories ...settings.Category) *Static {
	s, err := NewStatic(categories...)
	if err != nil {
		panic(err)
	}
	return s
}

// Add appends a category.
func (s *Static) Add(category settings.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(category)
}

func (s *Static) add(category settings.Category) error {
	id := strings.TrimSpace(category.ID)
	if id == "" {
		return fmt.Errorf("taxonomy: category id is required")
	}
	if _, exists := s.index[id]; exists {
		return fmt.Errorf("taxonomy: duplicate category %q", id)
	}
	category.ID = id
	s.index[id] = struct{}{}
	s.categories = append(s.categories, category)
	return nil
}

func (s *Static) ListCategories(ctx context.Context) ([]settings.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]settings.Category(nil), s.categories...), nil
}

func (s *Static) CategoryExists(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[strings.TrimSpace(id)]
	return ok, nil
}
