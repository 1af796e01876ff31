package ir

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"
)

// Value is a sealed interface representing a single column value as the
// store returned it. Only Null, Text, Int, Real, Bool and Blob implement it.
type Value interface {
	irValue() // Sealed - only these types implement it

	// String renders the value the way the CLI prints it.
	String() string
}

// Null represents SQL NULL.
type Null struct{}

func (Null) irValue() {}

func (Null) String() string { return "NULL" }

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Text represents a TEXT / VARCHAR value.
type Text string

func (Text) irValue() {}

func (t Text) String() string { return string(t) }

// Int represents an INTEGER value. Always int64.
type Int int64

func (Int) irValue() {}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Real represents a REAL / DOUBLE value.
type Real float64

func (Real) irValue() {}

func (r Real) String() string { return strconv.FormatFloat(float64(r), 'g', -1, 64) }

// MarshalJSON encodes NaN and infinities as strings since JSON has no
// representation for them.
func (r Real) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return json.Marshal(r.String())
	}
	return json.Marshal(f)
}

// Bool represents a BOOLEAN value (postgres only; SQLite stores integers).
type Bool bool

func (Bool) irValue() {}

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// Blob represents binary data that is not valid UTF-8.
type Blob []byte

func (Blob) irValue() {}

func (b Blob) String() string { return fmt.Sprintf("<blob %d bytes>", len(b)) }

// TimeLayout is the text form used for driver-parsed timestamps, matching
// SQLite's CURRENT_TIMESTAMP format.
const TimeLayout = "2006-01-02 15:04:05"

// FromDriver converts a value scanned into an interface{} by database/sql
// into a typed Value. Drivers hand back int64, float64, bool, []byte, string,
// time.Time or nil; anything else is rendered as Text.
func FromDriver(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null{}
	case int64:
		return Int(val)
	case int:
		return Int(int64(val))
	case int32:
		return Int(int64(val))
	case float64:
		return Real(val)
	case float32:
		return Real(float64(val))
	case bool:
		return Bool(val)
	case string:
		return Text(val)
	case []byte:
		if utf8.Valid(val) {
			return Text(string(val))
		}
		// Copy: drivers may reuse the scan buffer
		return Blob(append([]byte(nil), val...))
	case time.Time:
		return Text(val.UTC().Format(TimeLayout))
	default:
		return Text(fmt.Sprint(val))
	}
}

// Native returns the value as a plain Go value (nil, string, int64, float64,
// bool or []byte). Used when comparing against YAML or JSON fixtures.
func Native(v Value) any {
	switch val := v.(type) {
	case Null, nil:
		return nil
	case Text:
		return string(val)
	case Int:
		return int64(val)
	case Real:
		return float64(val)
	case Bool:
		return bool(val)
	case Blob:
		return []byte(val)
	default:
		return nil
	}
}
