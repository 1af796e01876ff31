package ir

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDriver(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Null{}},
		{"int64", int64(3), Int(3)},
		{"int", 7, Int(7)},
		{"float64", 2.5, Real(2.5)},
		{"bool", true, Bool(true)},
		{"string", "Rajesh Kumar", Text("Rajesh Kumar")},
		{"utf8 bytes", []byte("pending"), Text("pending")},
		{"binary bytes", []byte{0xff, 0xfe}, Blob{0xff, 0xfe}},
		{"time", ts, Text("2024-01-15 10:00:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromDriver(tt.in))
		})
	}
}

func TestFromDriver_CopiesBlob(t *testing.T) {
	buf := []byte{0xff, 0x00}
	v := FromDriver(buf)
	buf[0] = 0x01

	assert.Equal(t, Blob{0xff, 0x00}, v)
}

func TestNative(t *testing.T) {
	assert.Nil(t, Native(Null{}))
	assert.Equal(t, "x", Native(Text("x")))
	assert.Equal(t, int64(3), Native(Int(3)))
	assert.Equal(t, 1.5, Native(Real(1.5)))
	assert.Equal(t, false, Native(Bool(false)))
	assert.Equal(t, []byte{1}, Native(Blob{1}))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "NULL", Null{}.String())
	assert.Equal(t, "75", Int(75).String())
	assert.Equal(t, "0.5", Real(0.5).String())
	assert.Equal(t, "<blob 2 bytes>", Blob{1, 2}.String())
}

func TestRealMarshalJSON_NonFinite(t *testing.T) {
	data, err := json.Marshal(Real(math.Inf(1)))
	require.NoError(t, err)
	assert.Equal(t, `"+Inf"`, string(data))
}

func TestRow_PreservesColumnOrder(t *testing.T) {
	row := NewRow(
		[]string{"name", "document_count"},
		[]Value{Text("Rajesh Kumar"), Int(3)},
	)

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Rajesh Kumar","document_count":3}`, string(data))
	assert.Equal(t, "{name: Rajesh Kumar, document_count: 3}", row.String())

	v, ok := row.Get("document_count")
	require.True(t, ok)
	assert.Equal(t, Int(3), v)

	_, ok = row.Get("missing")
	assert.False(t, ok)
}

func TestRow_NullEncodesAsJSONNull(t *testing.T) {
	row := NewRow([]string{"phone"}, []Value{Null{}})

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"phone":null}`, string(data))
}

func TestRow_AccessorsReturnCopies(t *testing.T) {
	row := NewRow([]string{"a"}, []Value{Int(1)})

	cols := row.Columns()
	cols[0] = "b"
	vals := row.Values()
	vals[0] = Int(2)

	assert.Equal(t, []string{"a"}, row.Columns())
	assert.Equal(t, []Value{Int(1)}, row.Values())
}

func TestNewRow_PanicsOnLengthMismatch(t *testing.T) {
	assert.Panics(t, func() {
		NewRow([]string{"a", "b"}, []Value{Int(1)})
	})
}

func TestSchemaMap(t *testing.T) {
	s := SchemaMap{
		"processes": {"id", "name"},
		"customers": {"id", "name", "email"},
	}

	assert.Equal(t, []string{"customers", "processes"}, s.Tables())
	assert.True(t, s.HasColumn("customers", "email"))
	assert.False(t, s.HasColumn("processes", "email"))
	assert.False(t, s.HasColumn("missing", "id"))
}
