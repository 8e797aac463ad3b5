package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "bandbook/internal/errors"
)

func TestReconcileTracks(t *testing.T) {
	tests := []struct {
		name          string
		current       []string
		add           []string
		remove        []string
		expected      []string
		expectedError error
	}{
		{
			name:     "add to empty set",
			current:  nil,
			add:      []string{"a", "b"},
			remove:   nil,
			expected: []string{"a", "b"},
		},
		{
			name:     "remove preserves survivor order",
			current:  []string{"a", "b", "c", "d"},
			add:      nil,
			remove:   []string{"b", "d"},
			expected: []string{"a", "c"},
		},
		{
			name:     "additions appended at the end in input order",
			current:  []string{"a", "b"},
			add:      []string{"d", "c"},
			remove:   nil,
			expected: []string{"a", "b", "d", "c"},
		},
		{
			name:     "adding an existing id is a no-op",
			current:  []string{"a", "b"},
			add:      []string{"b"},
			remove:   []string{"a"},
			expected: []string{"b"},
		},
		{
			name:     "remove wins when an id is in both deltas",
			current:  []string{"a"},
			add:      []string{"x"},
			remove:   []string{"x"},
			expected: []string{"a"},
		},
		{
			name:     "remove wins for an id already in the set",
			current:  []string{"a", "x"},
			add:      []string{"x"},
			remove:   []string{"x"},
			expected: []string{"a"},
		},
		{
			name:     "duplicate additions collapse",
			current:  []string{"a"},
			add:      []string{"b", "b", "c"},
			remove:   nil,
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "duplicates in current collapse",
			current:  []string{"a", "b", "a"},
			add:      []string{"c"},
			remove:   nil,
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "removing a missing id is a no-op",
			current:  []string{"a"},
			add:      nil,
			remove:   []string{"zzz"},
			expected: []string{"a"},
		},
		{
			name:          "both deltas empty is rejected",
			current:       []string{"a"},
			add:           nil,
			remove:        nil,
			expectedError: apperrors.ErrNothingToChange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := ReconcileTracks(tt.current, tt.add, tt.remove)
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, next)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, next)
			}
		})
	}
}

func TestDedupeTracks(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dedupeTracks([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []string{}, dedupeTracks(nil))
}
