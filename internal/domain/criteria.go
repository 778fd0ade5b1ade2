package domain

import "time"

// FilterCriteria captures one user selection across the filter controls.
// An empty slice means "no restriction" for that dimension, never "match
// nothing". The date filter applies only when both bounds are present.
type FilterCriteria struct {
	Categories    []string   `json:"categories,omitempty"`
	LocationUnits []string   `json:"locationUnits,omitempty"`
	DateFrom      *time.Time `json:"dateFrom,omitempty"`
	DateTo        *time.Time `json:"dateTo,omitempty"`
}

// DateFilterActive reports whether both range bounds are set.
func (c FilterCriteria) DateFilterActive() bool {
	return c.DateFrom != nil && c.DateTo != nil
}

// Unrestricted reports whether the criteria match the full dataset.
func (c FilterCriteria) Unrestricted() bool {
	return len(c.Categories) == 0 && len(c.LocationUnits) == 0 && !c.DateFilterActive()
}
