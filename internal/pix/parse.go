package pix

import (
	"fmt"
	"strconv"
)

var ErrMalformedPayload = fmt.Errorf("pix: malformed payload")

// Field is one decoded TLV entry. Nested templates (26, 62) keep their raw
// value; run Parse on Value again to descend.
type Field struct {
	Tag   string
	Value string
}

// Parse walks a TLV string back into its fields. It is the inverse of the
// builder and is used to verify payloads round-trip, CRC suffix included
// when present (the CRC field parses like any other).
func Parse(payload string) ([]Field, error) {
	var fields []Field
	for i := 0; i < len(payload); {
		if i+4 > len(payload) {
			return nil, fmt.Errorf("%w: dangling header at offset %d", ErrMalformedPayload, i)
		}
		tag := payload[i : i+2]
		length, err := strconv.Atoi(payload[i+2 : i+4])
		if err != nil {
			return nil, fmt.Errorf("%w: bad length for tag %s", ErrMalformedPayload, tag)
		}
		if i+4+length > len(payload) {
			return nil, fmt.Errorf("%w: tag %s claims %d bytes past the end", ErrMalformedPayload, tag, length)
		}
		fields = append(fields, Field{Tag: tag, Value: payload[i+4 : i+4+length]})
		i += 4 + length
	}
	return fields, nil
}

// Get returns the value of the first field with the given tag.
func Get(fields []Field, tag string) (string, bool) {
	for _, f := range fields {
		if f.Tag == tag {
			return f.Value, true
		}
	}
	return "", false
}
