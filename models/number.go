package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number is a float64 that also accepts numeric strings when decoding JSON.
// The model occasionally emits "450" where the schema asks for 450; both
// must read identically, so the coercion lives here at the decode boundary
// and nowhere else.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse numeric string %q: %w", s, err)
		}
		*n = Number(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

// MarshalJSON always emits a plain number, so the string/number ambiguity
// never leaves this package.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

func (n Number) Float64() float64 {
	return float64(n)
}
