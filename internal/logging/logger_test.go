package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warn"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("error"))
	assert.Equal(t, logrus.TraceLevel, GetLevel("trace"))
	assert.Equal(t, logrus.InfoLevel, GetLevel(""))
	assert.Equal(t, logrus.InfoLevel, GetLevel("loud"))
}

func TestSetup_WritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "glidepath")
	logger, closer := Setup(LoggerSetupParams{LogFileName: path, LogLevel: "info"})
	logger.WithField("week", 3).Info("week committed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), "week committed")
	assert.Contains(t, string(data), "week=3")
}

func TestSetup_MirrorsToStdoutAsJSON(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "glidepath.log")
	logger, closer := Setup(LoggerSetupParams{
		LogFileName:   path,
		LogToStdout:   true,
		LogFormatJSON: true,
		LogLevel:      "debug",
		Stdout:        &buf,
	})
	defer closer.Close()

	logger.Debug("loaded snapshot")
	assert.Contains(t, buf.String(), `"msg":"loaded snapshot"`)
	assert.Contains(t, buf.String(), `"level":"debug"`)
}

func TestSetup_NoFileNoStdoutDiscards(t *testing.T) {
	logger, closer := Setup(LoggerSetupParams{LogLevel: "info"})
	defer closer.Close()
	assert.NotPanics(t, func() { logger.Info("dropped") })
}

func TestSetup_LevelFiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := Setup(LoggerSetupParams{LogToStdout: true, LogLevel: "warn", Stdout: &buf})
	defer closer.Close()

	logger.Info("quiet")
	logger.Warn("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}
