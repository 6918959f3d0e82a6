package breakpoint

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_Format(t *testing.T) {
	c := NewCollection(New(1500*time.Millisecond, "intro"))

	data, err := Marshal(c)
	require.NoError(t, err)

	assert.JSONEq(t, `{"breakpoints":[{"hint":"intro","timepoint":{"secs":1,"nanos":500000000}}]}`, string(data))
}

func TestMarshal_Empty(t *testing.T) {
	data, err := Marshal(NewCollection())
	require.NoError(t, err)

	assert.JSONEq(t, `{"breakpoints":[]}`, string(data))
}

func TestUnmarshal_SortsRecords(t *testing.T) {
	data := []byte(`{"breakpoints":[
		{"hint":"b","timepoint":{"secs":90,"nanos":0}},
		{"hint":"a","timepoint":{"secs":10,"nanos":250}}
	]}`)

	c, err := Unmarshal(data)
	require.NoError(t, err)

	require.Equal(t, 2, c.Len())
	assert.Equal(t, New(10*time.Second+250, "a"), c.At(0))
	assert.Equal(t, New(90*time.Second, "b"), c.At(1))
}

func TestUnmarshal_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `breakpoints: []`},
		{"missing key", `{"markers":[]}`},
		{"null list", `{"breakpoints":null}`},
		{"wrong type", `{"breakpoints":{"hint":"x"}}`},
		{"nanos overflow", `{"breakpoints":[{"hint":"x","timepoint":{"secs":1,"nanos":1000000000}}]}`},
		{"negative secs", `{"breakpoints":[{"hint":"x","timepoint":{"secs":-1,"nanos":0}}]}`},
		{"secs overflow", `{"breakpoints":[{"hint":"x","timepoint":{"secs":18446744073709551615,"nanos":0}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Unmarshal([]byte(tt.data))
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, ErrCorruptSaveFile), "err = %v", err)
		})
	}
}
