package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstance(t *testing.T) {
	inst, err := ParseInstance(strings.NewReader("3\n1 2\n3 4\n0 0\n"))
	require.NoError(t, err)
	assert.Equal(t, []Drink{d(1, 2), d(3, 4), d(0, 0)}, inst.Targets)
}

func TestParseInstance_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"short", "2\n1 2\n3"},
		{"not a number", "1\n1 x\n"},
		{"negative count", "-1\n"},
		{"negative coordinate", "1\n-3 2\n"},
		{"coordinate above limit", "1\n68719476737 0\n"},
		{"max int64 coordinate", "1\n9223372036854775807 0\n"},
		{"too many targets", "1048577\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInstance(strings.NewReader(tt.input))
			require.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestParseOperations(t *testing.T) {
	ops, err := ParseOperations(strings.NewReader("2\n0 0 3 5\n3 5 4 6\n"))
	require.NoError(t, err)
	assert.Equal(t, []Operation{
		{Source: Origin, Result: d(3, 5)},
		{Source: d(3, 5), Result: d(4, 6)},
	}, ops)

	_, err = ParseOperations(strings.NewReader("1\n0 0 3\n"))
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestParseOperations_HugeCount(t *testing.T) {
	_, err := ParseOperations(strings.NewReader("9000000000000000000\n0 0 1 1\n"))
	require.ErrorIs(t, err, ErrMalformedInput)

	// a large but legal count is not preallocated; the log just runs short
	_, err = ParseOperations(strings.NewReader("5000000\n0 0 1 1\n"))
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestParseInstance_CoordinateLimit(t *testing.T) {
	inst, err := ParseInstance(strings.NewReader("1\n68719476736 68719476736\n"))
	require.NoError(t, err)
	assert.Equal(t, []Drink{d(MaxCoordinate, MaxCoordinate)}, inst.Targets)

	inst, err = ParseInstanceJSON(`{"targets": [[68719476736, 0]]}`)
	require.NoError(t, err)
	assert.Equal(t, []Drink{d(MaxCoordinate, 0)}, inst.Targets)
}

func TestParseInstanceJSON(t *testing.T) {
	inst, err := ParseInstanceJSON(`{"targets": [[3, 5], {"sweetness": 2, "fizziness": 0}]}`)
	require.NoError(t, err)
	assert.Equal(t, []Drink{d(3, 5), d(2, 0)}, inst.Targets)

	inst, err = ParseInstanceJSON(`{"targets": []}`)
	require.NoError(t, err)
	assert.Empty(t, inst.Targets)
}

func TestParseInstanceJSON_Malformed(t *testing.T) {
	for _, doc := range []string{
		`not json`,
		`{}`,
		`{"targets": 3}`,
		`{"targets": [[1]]}`,
		`{"targets": [["a", 1]]}`,
		`{"targets": [[1, -1]]}`,
		`{"targets": [[68719476737, 0]]}`,
		`{"targets": [[0, 9223372036854775807]]}`,
		`{"targets": [[1e30, 0]]}`,
		`{"targets": [{"sweetness": 1}]}`,
	} {
		_, err := ParseInstanceJSON(doc)
		assert.ErrorIs(t, err, ErrMalformedInput, doc)
	}
}

func TestWriteOperations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOperations(&buf, []Operation{
		{Source: Origin, Result: d(3, 5)},
		{Source: d(3, 5), Result: d(4, 6)},
	}))
	assert.Equal(t, "2\n0 0 3 5\n3 5 4 6\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteOperations(&buf, nil))
	assert.Equal(t, "0\n", buf.String())
}

func TestWriteInstance(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInstance(&buf, &Instance{Targets: []Drink{d(1, 2), d(30, 0)}}))
	assert.Equal(t, "2\n1 2\n30 0\n", buf.String())
}
