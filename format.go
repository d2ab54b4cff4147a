// FILE: dobrawek/drlogger/format.go
package drlogger

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// dumper renders composite arguments in a compact, deterministic form
var dumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// formatMessage builds the record message from a message and trailing arguments.
// Format verbs in the message consume args first. A trailing error argument left
// over after the verbs becomes the record error, and any other remaining args are
// appended to the message separated by spaces.
func formatMessage(message string, args []any) (string, error) {
	if len(args) == 0 {
		return message, nil
	}

	verbs := verbArgs(message)
	var err error
	if len(args) > verbs {
		if last, ok := args[len(args)-1].(error); ok {
			err = last
			args = args[:len(args)-1]
		}
	}

	buf := make([]byte, 0, len(message)+16*len(args))
	if verbs > 0 {
		n := min(verbs, len(args))
		buf = fmt.Appendf(buf, message, args[:n]...)
		args = args[n:]
	} else {
		buf = append(buf, message...)
	}
	for _, arg := range args {
		if len(buf) > 0 {
			buf = append(buf, ' ')
		}
		buf = appendValue(buf, arg)
	}
	return string(buf), err
}

// fmtVerbs lists the verb letters fmt understands
const fmtVerbs = "bcdeEfFgGoOpqstTUvxX"

// verbArgs reports how many arguments the format verbs in message consume.
// Flags, width, precision, '*' and explicit [n] indexes follow fmt. The space
// flag is not recognised so prose like "95% full" stays literal, as do "%%"
// and a '%' that is not followed by a verb letter.
func verbArgs(message string) int {
	used, next := 0, 0
	for i := 0; i < len(message); i++ {
		if message[i] != '%' {
			continue
		}
		if i+1 < len(message) && message[i+1] == '%' {
			i++
			continue
		}

		j := i + 1
		for j < len(message) && strings.IndexByte("+-#0", message[j]) >= 0 {
			j++
		}

		index, stars := 0, 0
	scan:
		for j < len(message) {
			switch c := message[j]; {
			case c >= '0' && c <= '9', c == '.':
				j++
			case c == '*':
				stars++
				j++
			case c == '[':
				end := strings.IndexByte(message[j:], ']')
				if end < 0 {
					j = len(message)
					break scan
				}
				n, err := strconv.Atoi(message[j+1 : j+end])
				if err != nil || n < 1 {
					j = len(message)
					break scan
				}
				index = n
				j += end + 1
			default:
				break scan
			}
		}

		if j >= len(message) || strings.IndexByte(fmtVerbs, message[j]) < 0 {
			continue
		}
		next += stars
		if index > 0 {
			next = index - 1
		}
		next++
		used = max(used, next)
		i = j
	}
	return used
}

// appendValue converts any value to its text representation.
// Types not handled explicitly fall back to spew.
func appendValue(buf []byte, v any) []byte {
	switch val := v.(type) {
	case string:
		return append(buf, val...)
	case int:
		return strconv.AppendInt(buf, int64(val), 10)
	case int64:
		return strconv.AppendInt(buf, val, 10)
	case int32:
		return strconv.AppendInt(buf, int64(val), 10)
	case uint:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(buf, val, 10)
	case float32:
		return strconv.AppendFloat(buf, float64(val), 'f', -1, 32)
	case float64:
		return strconv.AppendFloat(buf, val, 'f', -1, 64)
	case bool:
		return strconv.AppendBool(buf, val)
	case nil:
		return append(buf, "nil"...)
	case time.Time:
		return val.AppendFormat(buf, time.RFC3339Nano)
	case time.Duration:
		return append(buf, val.String()...)
	case error:
		return append(buf, val.Error()...)
	case fmt.Stringer:
		return append(buf, val.String()...)
	case []byte:
		return hex.AppendEncode(buf, val)
	default:
		var b bytes.Buffer
		dumper.Fdump(&b, val)
		return append(buf, bytes.TrimSpace(b.Bytes())...)
	}
}

// errPanic wraps a recovered panic value
func errPanic(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return errors.New("panic: " + fmt.Sprint(v))
}
