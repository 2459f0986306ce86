package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		Logger = zerolog.Nop()
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	})

	Info().Str("node", "home").Msg("focused")
	out := buf.String()
	assert.Contains(t, out, `"msg":"focused"`)
	assert.Contains(t, out, `"node":"home"`)
	assert.Contains(t, out, `"ts":`)

	buf.Reset()
	Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	SetDebug(true)
	Debug().Msg("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	SetDebug(false)
	Debug().Msg("hidden again")
	Warn().Msg("stale target")
	assert.NotContains(t, buf.String(), "hidden again")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
