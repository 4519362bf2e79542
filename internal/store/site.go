package store

import (
	"sync"

	"github.com/matthieukhl/toposhop/internal/models"
)

// Site holds the static descriptive content of the storefront. Pure
// configuration, no invariants.
type Site struct {
	mu   sync.RWMutex
	data models.SiteData
}

// NewSite creates a site container with the given content.
func NewSite(data models.SiteData) *Site {
	return &Site{data: data}
}

// Data returns the current site content.
func (s *Site) Data() models.SiteData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// SetData replaces the site content wholesale.
func (s *Site) SetData(data models.SiteData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}
