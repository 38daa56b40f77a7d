package catalog

import (
	"errors"
	"fmt"
)

// ErrConsistency classifies data-integrity failures detected while building a catalog.
var ErrConsistency = errors.New("catalog consistency error")

// ConsistencyError identifies the record that broke catalog integrity.
type ConsistencyError struct {
	Entity string // "region", "tour", "attraction" or "link"
	ID     string
	Reason string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("catalog: %s %s: %s", e.Entity, e.ID, e.Reason)
}

func (e *ConsistencyError) Unwrap() error { return ErrConsistency }

func inconsistent(entity string, id any, format string, args ...any) error {
	return &ConsistencyError{
		Entity: entity,
		ID:     fmt.Sprint(id),
		Reason: fmt.Sprintf(format, args...),
	}
}
