package filesystem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input string
		want  Size
	}{
		{"0", 0},
		{"512", 512},
		{"100B", 100},
		{"64kB", 64 * KB},
		{"64K", 64 * KB},
		{"10MB", 10 * MB},
		{"10 mb", 10 * MB},
		{"2g", 2 * GB},
		{" 1GB ", GB},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "MB", "ten", "-5MB", "1.5MB", "10TB", "9000000000GB", "9007199254740992KB", "99999999999999999999"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseSize(bad)
			assert.ErrorIs(t, err, ErrInvalidSize)
		})
	}
}

func TestParseSizeLimits(t *testing.T) {
	got, err := ParseSize("8589934591GB")
	require.NoError(t, err)
	assert.Equal(t, Size(8589934591)*GB, got)
	assert.Positive(t, got.Bytes())

	_, err = ParseSize("8589934592GB")
	assert.ErrorIs(t, err, ErrInvalidSize)

	got, err = ParseSize("9223372036854775807")
	require.NoError(t, err)
	assert.Equal(t, Size(math.MaxInt64), got)
}

func TestSizeString(t *testing.T) {
	assert.Equal(t, "0B", Size(0).String())
	assert.Equal(t, "100B", Size(100).String())
	assert.Equal(t, "1536B", Size(1536).String())
	assert.Equal(t, "64KB", (64 * KB).String())
	assert.Equal(t, "10MB", (10 * MB).String())
	assert.Equal(t, "3GB", (3 * GB).String())

	for _, s := range []Size{100, 1536, 64 * KB, 10 * MB, 3 * GB} {
		parsed, err := ParseSize(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestSizeText(t *testing.T) {
	var s Size
	require.NoError(t, s.UnmarshalText([]byte("5MB")))
	assert.Equal(t, int64(5*1024*1024), s.Bytes())

	text, err := s.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "5MB", string(text))

	assert.Error(t, s.UnmarshalText([]byte("lots")))
}
