package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("wrapped sentinel matches by code", func(t *testing.T) {
		err := fmt.Errorf("load invitation: %w", NewNotFoundError("Invitation not found"))
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrGone))
	})

	t.Run("message is preserved", func(t *testing.T) {
		err := NewGoneError("Invitation has expired")
		assert.Equal(t, "Invitation has expired", err.Error())
		assert.Equal(t, CodeGone, err.Code)
	})
}

func TestFilter_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Filter
		page     int
		pageSize int
	}{
		{"zero values", Filter{}, 1, DefaultPageSize},
		{"negative page", Filter{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page", Filter{Page: 2, PageSize: 1000}, 2, MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.in.Normalize()
			assert.Equal(t, tt.page, f.Page)
			assert.Equal(t, tt.pageSize, f.PageSize)
			assert.NotNil(t, f.Filters)
		})
	}

	assert.Equal(t, 40, Filter{Page: 3, PageSize: 20}.Offset())
}
