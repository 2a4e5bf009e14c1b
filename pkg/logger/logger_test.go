package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggerFallsBackToGlobal(t *testing.T) {
	ctx := context.Background()
	entry := GetLogger(ctx)
	require.NotNil(t, entry)
	assert.Equal(t, L.Logger, entry.Logger)
}

func TestWithLoggerRoundTrip(t *testing.T) {
	base := logrus.New()
	entry := logrus.NewEntry(base).WithField("component", "skills")

	ctx := WithLogger(context.Background(), entry)
	got := GetLogger(ctx)

	require.NotNil(t, got)
	assert.Equal(t, "skills", got.Data["component"])
}

func TestSetLogLevel(t *testing.T) {
	require.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())

	assert.Error(t, SetLogLevel("not-a-level"))

	require.NoError(t, SetLogLevel("info"))
}

func TestJSONFormat(t *testing.T) {
	oldOut := L.Logger.Out
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(oldOut)

	SetLogFormat("json")
	defer SetLogFormat("fmt")

	L.Info("hello")
	assert.Contains(t, buf.String(), `"message":"hello"`)
}
