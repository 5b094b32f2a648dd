package logctx

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestFromContextDefault(t *testing.T) {
	l := FromContext(nil)
	require.Equal(t, DefaultLogger(), l)
	require.Equal(t, DefaultLogger(), FromContext(context.Background()))
}

func TestWithStr(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithLogger(context.Background(), zerolog.New(buf))
	ctx = WithStr(ctx, "input", "snapshot_000")

	l := FromContext(ctx)
	l.Info().Msg("converted")

	line := map[string]string{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "snapshot_000", line["input"])
	require.Equal(t, "converted", line["message"])
	require.Equal(t, "info", line["level"])
}

func TestNewConfiguredLogger(t *testing.T) {
	require.Equal(t, zerolog.InfoLevel, NewConfiguredLogger(false, false).GetLevel())
	require.Equal(t, zerolog.DebugLevel, NewConfiguredLogger(true, true).GetLevel())
}
