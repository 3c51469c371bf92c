package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/keybit/internal/core/bitting"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	restore := SetOutput(&out, &errOut)
	t.Cleanup(restore)
	return &out, &errOut
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatPretty, false},
		{"pretty", FormatPretty, false},
		{"json", FormatJSON, false},
		{" JSON ", FormatJSON, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONFormatter_Output(t *testing.T) {
	out, _ := captureOutput(t)

	result := bitting.MatchResult{
		Candidates: []bitting.Code{{1, 2}, {2, 2}},
		Total:      4,
	}
	require.NoError(t, NewJSONFormatter().Output(result))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, []interface{}{"12", "22"}, decoded["candidates"])
	assert.Equal(t, float64(4), decoded["total_combinations"])
	assert.Equal(t, false, decoded["too_many"])
}

func TestJSONFormatter_OutputError(t *testing.T) {
	out, errOut := captureOutput(t)

	require.NoError(t, NewJSONFormatter().OutputError(errors.New("keyway not found: HU99")))
	assert.Empty(t, out.String())
	assert.JSONEq(t, `{"error":"keyway not found: HU99"}`, errOut.String())
}

func TestPrettyFormatter(t *testing.T) {
	out, errOut := captureOutput(t)
	f := NewPrettyFormatter()
	assert.False(t, f.IsJSON())

	require.NoError(t, f.Output("plain text\n"))
	require.NoError(t, f.Output(42))
	assert.Equal(t, "plain text\n42\n", out.String())

	require.NoError(t, f.OutputError(errors.New("boom")))
	assert.Contains(t, errOut.String(), "boom")
}

func TestRender(t *testing.T) {
	out, _ := captureOutput(t)
	steps := []bitting.CutStep{{Order: 1, Index: 0, Depth: 1}}

	called := false
	require.NoError(t, NewJSONFormatter().Render(steps, func() { called = true }))
	assert.False(t, called, "json output never runs the pretty printer")
	assert.Contains(t, out.String(), `"depth": 1`)

	out.Reset()
	require.NoError(t, NewPrettyFormatter().Render(steps, func() { called = true }))
	assert.True(t, called)
	assert.Empty(t, out.String())

	require.NoError(t, NewPrettyFormatter().Render("fallback\n", nil))
	assert.Equal(t, "fallback\n", out.String())
}

func TestSetGlobalFormatter(t *testing.T) {
	original := GlobalFormatter
	t.Cleanup(func() { GlobalFormatter = original })

	require.NoError(t, SetGlobalFormatter(FormatJSON))
	assert.True(t, GlobalFormatter.IsJSON())

	err := SetGlobalFormatter("yaml")
	assert.EqualError(t, err, "unsupported format: yaml")
	assert.True(t, GlobalFormatter.IsJSON(), "a failed switch keeps the current formatter")

	_, err = ParseFormat("xml")
	assert.EqualError(t, err, "unsupported format: xml (use json or pretty)")
}
