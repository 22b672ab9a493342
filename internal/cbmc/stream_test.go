package cbmc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutput = `[
  {"program": "CBMC 5.95.1 (cbmc-5.95.1)"},
  {"messageText": "CBMC version 5.95.1 (cbmc-5.95.1) 64-bit x86_64 linux", "messageType": "STATUS-MESSAGE"},
  {"messageText": "Building error trace", "messageType": "STATUS-MESSAGE"},
  {"result": [
    {
      "description": "assertion failed: x > 0",
      "property": "main.assertion.1",
      "sourceLocation": {"file": "src/main.rs", "function": "main", "line": "12", "column": 5},
      "status": "FAILURE",
      "trace": [
        {"stepType": "function-call", "function": {"displayName": "main", "identifier": "main", "sourceLocation": {"file": "src/main.rs", "line": "3"}}},
        {"stepType": "failure", "sourceLocation": {"file": "src/main.rs", "function": "main", "line": "12"}}
      ]
    },
    {
      "description": "attempt to add with overflow",
      "property": "main.overflow.1",
      "sourceLocation": {"file": "src/main.rs", "function": "main", "line": 14},
      "status": "UNKNOWN"
    }
  ]},
  {"messageText": "VERIFICATION FAILED", "messageType": "STATUS-MESSAGE"}
]`

func TestDecodeAndClassify(t *testing.T) {
	records, err := DecodeRecords([]byte(sampleOutput))
	require.NoError(t, err)
	require.Len(t, records, 5)

	stream, err := Classify(records)
	require.NoError(t, err)

	assert.True(t, stream.HasResult)
	require.Len(t, stream.Messages, 4)
	assert.Equal(t, "CBMC 5.95.1 (cbmc-5.95.1)", stream.Messages[0].Program)
	assert.Equal(t, "VERIFICATION FAILED", stream.Messages[3].MessageText)

	require.Len(t, stream.Properties, 2)
	first := stream.Properties[0]
	assert.Equal(t, "main.assertion.1", first.Name)
	assert.Equal(t, StatusFailure, first.Status)
	assert.Equal(t, SourceLocation{File: "src/main.rs", Function: "main", Line: "12", Column: "5"}, first.SourceLocation)
	require.Len(t, first.Trace, 2)
	assert.Equal(t, "3", first.Trace[0].Location().Line)
	assert.Equal(t, "12", first.LastTraceStep().Location().Line)

	second := stream.Properties[1]
	assert.Equal(t, StatusUndetermined, second.Status)
	assert.Equal(t, "14", second.SourceLocation.Line)
	assert.Empty(t, second.Trace)
	assert.Nil(t, second.Reach)
}

func TestDecodeRecordsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "Segmentation fault"},
		{name: "object instead of array", input: `{"result": []}`},
		{name: "truncated", input: `[{"program": "CBMC"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecords([]byte(tt.input))
			var malformed *MalformedInputError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.input, malformed.Raw)
		})
	}
}

func TestClassifyWithoutResult(t *testing.T) {
	records, err := DecodeRecords([]byte(`[{"program": "CBMC"}, {"messageText": "oops", "messageType": "ERROR"}]`))
	require.NoError(t, err)

	stream, err := Classify(records)
	require.NoError(t, err)
	assert.False(t, stream.HasResult)
	assert.Empty(t, stream.Properties)
	assert.Len(t, stream.Messages, 2)
}

func TestClassifyLastResultWins(t *testing.T) {
	input := `[
	  {"result": [{"property": "a.assertion.1", "description": "first", "status": "SUCCESS"}]},
	  {"result": [{"property": "b.assertion.1", "description": "second", "status": "FAILURE"}]}
	]`
	records, err := DecodeRecords([]byte(input))
	require.NoError(t, err)

	stream, err := Classify(records)
	require.NoError(t, err)
	require.Len(t, stream.Properties, 1)
	assert.Equal(t, "b.assertion.1", stream.Properties[0].Name)
}

func TestClassifyUnknownStatus(t *testing.T) {
	records, err := DecodeRecords([]byte(`[{"result": [{"property": "a.assertion.1", "status": "MAYBE"}]}]`))
	require.NoError(t, err)

	_, err = Classify(records)
	assert.ErrorContains(t, err, `unknown property status "MAYBE"`)
}

func TestExtractErrors(t *testing.T) {
	messages := []Message{
		{Program: "CBMC"},
		{MessageText: "first error", MessageType: MessageTypeError},
		{MessageText: "just status", MessageType: "STATUS-MESSAGE"},
		{MessageText: "too many addressed objects: maximum number of objects is set to 2^n=256 (with n=8); use the `--object-bits n` option to increase the maximum number", MessageType: MessageTypeError},
	}

	errs := ExtractErrors(messages)
	require.Len(t, errs, 2)
	assert.Equal(t, "first error", errs[0])
	assert.Contains(t, errs[1], "use the `--enable-unstable --cbmc-args --object-bits n` option")
}

func TestExtractErrorsNone(t *testing.T) {
	assert.Empty(t, ExtractErrors([]Message{{MessageText: "ok", MessageType: "STATUS-MESSAGE"}}))
}
