package jsonrepair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestExtractJSON_PlainObject(t *testing.T) {
	out, err := ExtractJSON(`{"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.Get(out, "a").Int())
}

func TestExtractJSON_StripsCodeFenceAndSurroundingProse(t *testing.T) {
	input := "Sure, here you go:\n```json\n{\"narrative\":\"Hello\"}\n```\nHope that helps!"
	out, err := ExtractJSON(input)
	require.NoError(t, err)
	assert.Equal(t, "Hello", gjson.Get(out, "narrative").String())
}

func TestExtractJSON_BraceCounterIgnoresBracesInsideStrings(t *testing.T) {
	input := `prefix {"text":"a { b } c","n":2} suffix`
	out, err := ExtractJSON(input)
	require.NoError(t, err)
	assert.Equal(t, "a { b } c", gjson.Get(out, "text").String())
	assert.Equal(t, int64(2), gjson.Get(out, "n").Int())
}

func TestExtractJSON_NoObjectIsParseError(t *testing.T) {
	_, err := ExtractJSON("nothing but prose here")
	assert.Error(t, err)
}

// The evidence field is a bare comma-separated run of quoted strings rather
// than a single string.
func TestSanitizeJSON_SplicesEvidenceCommaRun(t *testing.T) {
	input := `{"inferred_changes":[{"entity_name":"X","state_type":"s","new_value":"v","evidence":"a","b","c","confidence":0.9,"target_entity":null}]}`

	extracted, err := ExtractJSON(input)
	require.NoError(t, err)

	out, err := SanitizeJSON(extracted)
	require.NoError(t, err)
	require.True(t, gjson.Valid(out))

	evidence := gjson.Get(out, "inferred_changes.0.evidence")
	assert.Equal(t, "a; b; c", evidence.String())
	assert.Equal(t, float64(0.9), gjson.Get(out, "inferred_changes.0.confidence").Float())
	assert.Equal(t, "X", gjson.Get(out, "inferred_changes.0.entity_name").String())
}

func TestSanitizeJSON_LeavesWellFormedEvidenceUnchanged(t *testing.T) {
	input := `{"evidence":"a single string","confidence":0.5}`
	out, err := SanitizeJSON(input)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestSanitizeJSON_NoEvidenceKeyPassesThrough(t *testing.T) {
	input := `{"narrative":"nothing to see here"}`
	out, err := SanitizeJSON(input)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}
