package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs used to tag a run in logs and stored results.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues version 7 UUIDs, so run ids sort by start time.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return v.String(), nil
}
