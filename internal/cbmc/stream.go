// Package cbmc decodes the JSON output of CBMC and splits it into status messages and verification results.
package cbmc

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	resultKey = "result"

	// MessageTypeError marks messages with ERROR severity.
	MessageTypeError = "ERROR"
	// BuildingTraceMessage is printed by CBMC right before the error traces.
	BuildingTraceMessage = "Building error trace"

	objectBitsFlag  = "--object-bits"
	unstableFlagSet = "--enable-unstable --cbmc-args "
)

// Record is one element of the top-level JSON array.
type Record map[string]interface{}

// Message is a non-result record: the program banner or a status/error message.
type Message struct {
	Program     string `mapstructure:"program"`
	MessageText string `mapstructure:"messageText"`
	MessageType string `mapstructure:"messageType"`
}

// IsError reports whether the message has ERROR severity.
func (m Message) IsError() bool {
	return m.MessageType == MessageTypeError
}

// Stream is the classified CBMC output.
type Stream struct {
	Properties []Property
	Messages   []Message
	HasResult  bool
}

type rawProperty struct {
	Description    string         `mapstructure:"description"`
	Property       string         `mapstructure:"property"`
	Status         string         `mapstructure:"status"`
	SourceLocation SourceLocation `mapstructure:"sourceLocation"`
	Trace          []TraceStep    `mapstructure:"trace"`
}

// DecodeRecords decodes the whole CBMC output into its ordered records.
func DecodeRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &MalformedInputError{Raw: string(data), Err: err}
	}
	return records, nil
}

// Classify splits the records into status messages and the property batch.
// Messages keep their original order. If several result batches are present the last one wins.
func Classify(records []Record) (*Stream, error) {
	stream := &Stream{}
	var batch interface{}

	for i, record := range records {
		if value, ok := record[resultKey]; ok {
			batch = value
			stream.HasResult = true
			continue
		}

		var msg Message
		if err := decode(record, &msg); err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", i, err)
		}
		stream.Messages = append(stream.Messages, msg)
	}

	if !stream.HasResult {
		return stream, nil
	}

	props, err := decodeProperties(batch)
	if err != nil {
		return nil, err
	}
	stream.Properties = props
	return stream, nil
}

func decodeProperties(batch interface{}) ([]Property, error) {
	var raws []rawProperty
	if err := decode(batch, &raws); err != nil {
		return nil, fmt.Errorf("failed to decode result object: %w", err)
	}

	props := make([]Property, 0, len(raws))
	for i, raw := range raws {
		status, err := ParseStatus(raw.Status)
		if err != nil {
			return nil, fmt.Errorf("result %d (%s): %w", i, raw.Property, err)
		}
		props = append(props, Property{
			Name:           raw.Property,
			Description:    raw.Description,
			Status:         status,
			SourceLocation: raw.SourceLocation,
			Trace:          raw.Trace,
		})
	}
	return props, nil
}

// decode converts loosely typed JSON values into typed structs.
// Numbers become strings where a string is expected, since CBMC is not consistent about line numbers.
func decode(input interface{}, output interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// ExtractErrors returns the text of every ERROR message, in order.
// Hints about --object-bits are rewritten to the flags that must be passed to reach CBMC.
func ExtractErrors(messages []Message) []string {
	var errs []string
	for _, msg := range messages {
		if !msg.IsError() {
			continue
		}
		errs = append(errs, rewriteErrorMessage(msg.MessageText))
	}
	return errs
}

func rewriteErrorMessage(text string) string {
	if !strings.Contains(text, objectBitsFlag) {
		return text
	}
	return strings.ReplaceAll(text, objectBitsFlag, unstableFlagSet+objectBitsFlag)
}
