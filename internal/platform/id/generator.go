package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for recalculation runs and published events.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator returns time-ordered UUIDv7 strings so run IDs sort by start time.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	value, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return value.String(), nil
}

// Static always returns the same ID. Used by tests and dry runs that need stable output.
type Static string

func (s Static) NewID() (string, error) {
	return string(s), nil
}
