package filesystem

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Size is a byte count
type Size int64

const (
	Byte Size = 1
	KB        = 1024 * Byte
	MB        = 1024 * KB
	GB        = 1024 * MB
)

// Bytes returns the size as a plain byte count
func (s Size) Bytes() int64 {
	return int64(s)
}

// String renders the size in the largest unit that divides it evenly
func (s Size) String() string {
	switch {
	case s != 0 && s%GB == 0:
		return strconv.FormatInt(int64(s/GB), 10) + "GB"
	case s != 0 && s%MB == 0:
		return strconv.FormatInt(int64(s/MB), 10) + "MB"
	case s != 0 && s%KB == 0:
		return strconv.FormatInt(int64(s/KB), 10) + "KB"
	default:
		return strconv.FormatInt(int64(s), 10) + "B"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Size) UnmarshalText(text []byte) error {
	parsed, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSize parses strings such as "512", "100B", "64kB", "10MB" or "1G"
func ParseSize(str string) (Size, error) {
	s := strings.TrimSpace(str)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidSize)
	}

	upper := strings.ToUpper(s)
	unit := Byte
	for _, suffix := range []struct {
		text string
		unit Size
	}{
		{"GB", GB}, {"MB", MB}, {"KB", KB},
		{"G", GB}, {"M", MB}, {"K", KB}, {"B", Byte},
	} {
		if strings.HasSuffix(upper, suffix.text) {
			unit = suffix.unit
			upper = strings.TrimSpace(strings.TrimSuffix(upper, suffix.text))
			break
		}
	}

	n, err := strconv.ParseInt(upper, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, str)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative value %q", ErrInvalidSize, str)
	}
	if n > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w: %q overflows int64", ErrInvalidSize, str)
	}
	return Size(n) * unit, nil
}
