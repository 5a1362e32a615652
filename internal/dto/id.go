package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexID is an identifier that the client may send either as a JSON string
// or as a JSON number. It is always normalized to its string form, so that
// 17 and "17" compare equal.
type FlexID string

// UnmarshalJSON accepts strings, numbers and null.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(strings.TrimSpace(s))
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("identifier must be a string or a number")
	}
	*f = FlexID(canonicalNumber(n))
	return nil
}

// canonicalNumber spells a JSON number the way a JavaScript client would
// print it, so 1e3, 1000.0 and 1000 all become "1000". Plain integer
// literals are kept as written to stay exact beyond float precision.
func canonicalNumber(n json.Number) string {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		return s
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (f FlexID) String() string {
	return string(f)
}

// IsZero reports whether no identifier was supplied.
func (f FlexID) IsZero() bool {
	return f == ""
}

// Uint64 parses the identifier as a user id.
func (f FlexID) Uint64() (uint64, error) {
	id, err := strconv.ParseUint(string(f), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", string(f))
	}
	return id, nil
}

// OptionalUint64 is Uint64 for optional references; empty yields nil.
func (f FlexID) OptionalUint64() (*uint64, error) {
	if f.IsZero() {
		return nil, nil
	}
	id, err := f.Uint64()
	if err != nil {
		return nil, err
	}
	return &id, nil
}
