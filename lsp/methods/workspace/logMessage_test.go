package workspace

import (
	"bytes"
	"testing"

	"bennypowers.dev/livesrv/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type sentNotification struct {
	method string
	params any
}

func recordingContext() (*glsp.Context, *[]sentNotification) {
	var sent []sentNotification
	return &glsp.Context{
		Notify: func(method string, params any) {
			sent = append(sent, sentNotification{method: method, params: params})
		},
	}, &sent
}

func TestLogError_NilContext(t *testing.T) {
	// Should not panic with nil context
	LogError(nil, "test error: %s", "message")
}

func TestLogWarning_NilContext(t *testing.T) {
	LogWarning(nil, "test warning: %s", "message")
}

func TestShowMessage_NilContext(t *testing.T) {
	ShowMessage(nil, protocol.MessageTypeInfo, "test message")
}

func TestShowMessage_EmptyContext(t *testing.T) {
	// No Notify func: nothing is sent and nothing panics
	ShowMessage(&glsp.Context{}, protocol.MessageTypeInfo, "test message")
}

func TestLogError_WithContext(t *testing.T) {
	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	defer log.SetOutput(nil)

	ctx, sent := recordingContext()
	LogError(ctx, "test error: %s", "message")

	require.Len(t, *sent, 1)
	assert.Equal(t, protocol.ServerWindowLogMessage, (*sent)[0].method)
	params, ok := (*sent)[0].params.(*protocol.LogMessageParams)
	require.True(t, ok)
	assert.Equal(t, protocol.MessageTypeError, params.Type)
	assert.Equal(t, "test error: message", params.Message)
	assert.Contains(t, logBuf.String(), "test error: message")
}

func TestShowMessage_WithContext(t *testing.T) {
	ctx, sent := recordingContext()
	ShowMessage(ctx, protocol.MessageTypeInfo, "first")
	ShowMessage(ctx, protocol.MessageTypeError, "second")

	require.Len(t, *sent, 2)
	first := (*sent)[0].params.(*protocol.ShowMessageParams)
	second := (*sent)[1].params.(*protocol.ShowMessageParams)
	assert.Equal(t, protocol.ServerWindowShowMessage, (*sent)[0].method)
	assert.Equal(t, "first", first.Message)
	assert.Equal(t, protocol.MessageTypeInfo, first.Type)
	assert.Equal(t, "second", second.Message)
	assert.Equal(t, protocol.MessageTypeError, second.Type)
}
