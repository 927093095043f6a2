package tmp

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Int is an integer field that tolerates JSON floats.
//
// Font-asset JSON produced by different exporters is inconsistent about
// integer fields: the same field may appear as 42 or 42.0 depending on the
// tool that wrote it. Int accepts both, truncating fractional values
// toward zero, and always marshals back as a plain integer. This is the
// coercion the downstream engine applies on designated integer fields.
type Int int

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*i = 0
		return nil
	}
	if v, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		*i = Int(v)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*i = Int(math.Trunc(f))
	return nil
}
