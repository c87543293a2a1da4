package sse

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameEncodeWireFormat(t *testing.T) {
	frame := Frame{
		Type:   FrameTypeContent,
		Module: "flashcards",
		Data:   json.RawMessage(`{"items":[]}`),
	}

	wire, err := frame.Encode()
	require.NoError(t, err)

	s := string(wire)
	assert.True(t, strings.HasPrefix(s, "data: "), "frame must use the data: field")
	assert.True(t, strings.HasSuffix(s, "\n\n"), "frame must end with a blank line")

	var decoded Frame
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSuffix(strings.TrimPrefix(s, "data: "), "\n\n")), &decoded))
	assert.Equal(t, FrameTypeContent, decoded.Type)
	assert.Equal(t, "flashcards", decoded.Module)
	assert.JSONEq(t, `{"items":[]}`, string(decoded.Data))
}

func TestFrameEncodeOmitsEmptyFields(t *testing.T) {
	wire, err := Frame{Type: FrameTypeDone, Module: "mcqs"}.Encode()
	require.NoError(t, err)

	assert.NotContains(t, string(wire), `"data"`)
	assert.NotContains(t, string(wire), `"error"`)
}

func TestFrameEncodeError(t *testing.T) {
	wire, err := Frame{Type: FrameTypeError, Module: "brief", Error: "generator unavailable"}.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(wire), `"error":"generator unavailable"`)
}

func TestWriterDisconnectIsSilent(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(bufio.NewWriter(&buf))

	require.NoError(t, w.Write([]byte("data: one\n\n")))
	assert.False(t, w.ClientGone())
	assert.Equal(t, "data: one\n\n", buf.String())
}
