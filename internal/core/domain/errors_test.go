package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrNoRoute", ErrNoRoute},
		{"ErrInvalidRoute", ErrInvalidRoute},
		{"ErrInvalidDocument", ErrInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrNoRoute))
	assert.False(t, errors.Is(ErrInvalidRoute, ErrInvalidInput))
}

func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("route r-1: %w", ErrInvalidRoute)
	assert.ErrorIs(t, err, ErrInvalidRoute)
	assert.Equal(t, "route r-1: invalid route", err.Error())
}
