// FILE: dobrawek/drlogger/utility_test.go
package drlogger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyValue(t *testing.T) {
	tests := []struct {
		input     string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{"key=value", "key", "value", false},
		{" key = value ", "key", "value", false},
		{"key=value=extra", "key", "value=extra", false},
		{"key=", "key", "", false},
		{"=value", "", "", true},
		{"novalue", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, value, err := parseKeyValue(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestFmtErrorf(t *testing.T) {
	err := fmtErrorf("test error: %s", "details")
	assert.Equal(t, "drlogger: test error: details", err.Error())

	// Already prefixed
	err = fmtErrorf("drlogger: existing prefix")
	assert.Equal(t, "drlogger: existing prefix", err.Error())

	cause := errors.New("cause")
	assert.ErrorIs(t, fmtErrorf("wrapped: %w", cause), cause)
}

func TestCombineErrors(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	assert.Nil(t, combineErrors(nil, nil))
	assert.Equal(t, first, combineErrors(first, nil))
	assert.Equal(t, second, combineErrors(nil, second))

	combined := combineErrors(first, second)
	assert.EqualError(t, combined, "first; second")
	assert.ErrorIs(t, combined, second)
}
