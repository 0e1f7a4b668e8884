package hidraw

import (
	"strconv"
	"strings"
)

// ParseUint16 parses a numeric string as hexadecimal when prefixed with
// "0x"/"0X" and as decimal otherwise. Values must fit in 16 bits, matching
// the width of USB vendor/product IDs and HID usage fields.
func ParseUint16(s string) (uint16, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 16)
		if err != nil {
			return 0, &InvalidHexError{Value: s, Err: err}
		}
		return uint16(v), nil
	}
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, &InvalidDecimalError{Value: s, Err: err}
	}
	return uint16(v), nil
}
