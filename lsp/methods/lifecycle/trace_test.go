package lifecycle

import (
	"testing"

	"bennypowers.dev/livesrv/internal/log"
	"bennypowers.dev/livesrv/lsp/testutil"
	"bennypowers.dev/livesrv/lsp/types"
	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestSetTrace(t *testing.T) {
	defer log.SetLevel(log.LevelInfo)

	tests := []struct {
		name  string
		value protocol.TraceValue
		want  log.Level
	}{
		{name: "off", value: protocol.TraceValueOff, want: log.LevelInfo},
		{name: "messages", value: protocol.TraceValueMessage, want: log.LevelInfo},
		{name: "verbose", value: protocol.TraceValueVerbose, want: log.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log.SetLevel(log.LevelInfo)
			req := types.NewRequestContext(testutil.NewMockServerContext(), nil)

			err := SetTrace(req, &protocol.SetTraceParams{Value: tt.value})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}
