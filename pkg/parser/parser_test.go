package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskResponse(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantFiles     int
		wantAnomalies int
		wantErr       bool
	}{
		{
			name:      "plain files array",
			raw:       `{"files":[{"path":"a.ts","content":"export const a = 1;"}]}`,
			wantFiles: 1,
		},
		{
			name:      "markdown wrapped JSON",
			raw:       "Here you go:\n```json\n{\"files\":[{\"path\":\"a.ts\",\"content\":\"x\"}]}\n```\nDone.",
			wantFiles: 1,
		},
		{
			name:          "nested object content is coerced",
			raw:           `{"files":[{"path":"a.ts","content":{"x":1}}]}`,
			wantFiles:     1,
			wantAnomalies: 1,
		},
		{
			name:          "entry without path is dropped",
			raw:           `{"files":[{"content":"x"},{"path":"b.ts","content":"y"}]}`,
			wantFiles:     1,
			wantAnomalies: 1,
		},
		{
			name:          "null content is coerced",
			raw:           `{"files":[{"path":"a.ts","content":null}]}`,
			wantFiles:     1,
			wantAnomalies: 1,
		},
		{
			name:    "not JSON at all",
			raw:     "sorry, I cannot do that",
			wantErr: true,
		},
		{
			name:    "missing files field",
			raw:     `{"result":"ok"}`,
			wantErr: true,
		},
		{
			name:    "files is not an array",
			raw:     `{"files":"a.ts"}`,
			wantErr: true,
		},
		{
			name:      "empty files array is a valid empty set",
			raw:       `{"files":[]}`,
			wantFiles: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, anomalies, err := ParseTaskResponse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidResponse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFiles, set.Len())
			assert.Len(t, anomalies, tt.wantAnomalies)
		})
	}
}

func TestParseTaskResponseCoercionIsDeterministic(t *testing.T) {
	set, anomalies, err := ParseTaskResponse(`{"files":[{"path":"a.ts","content":{"x":1}}]}`)
	require.NoError(t, err)
	require.Len(t, anomalies, 1)

	f, ok := set.Get("a.ts")
	require.True(t, ok)
	assert.Equal(t, "{\n  \"x\": 1\n}", f.Content)

	// Same input twice yields byte-identical content.
	set2, _, err := ParseTaskResponse(`{"files":[{"path":"a.ts","content":{"x":1}}]}`)
	require.NoError(t, err)
	f2, _ := set2.Get("a.ts")
	assert.Equal(t, f.Content, f2.Content)
}

func TestParseTaskResponseNullContentSerializes(t *testing.T) {
	set, anomalies, err := ParseTaskResponse(`{"files":[{"path":"a.ts","content":null}]}`)
	require.NoError(t, err)
	require.Len(t, anomalies, 1)
	assert.Equal(t, "a.ts", anomalies[0].Path)

	f, ok := set.Get("a.ts")
	require.True(t, ok)
	assert.Equal(t, "null", f.Content)
}

func TestParseTaskResponseLastWriteWins(t *testing.T) {
	raw := `{"files":[{"path":"a.ts","content":"first"},{"path":"a.ts","content":"second"}]}`
	set, _, err := ParseTaskResponse(raw)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	f, _ := set.Get("a.ts")
	assert.Equal(t, "second", f.Content)
}

func TestCoerceContent(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "string passes through", in: "hello", want: "hello"},
		{name: "number", in: float64(42), want: "42"},
		{name: "nested map with sorted keys", in: map[string]any{"b": 2.0, "a": 1.0}, want: "{\n  \"a\": 1,\n  \"b\": 2\n}"},
		{name: "array", in: []any{"x", "y"}, want: "[\n  \"x\",\n  \"y\"\n]"},
		{name: "null", in: nil, want: "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceContent(tt.in))
		})
	}
}
