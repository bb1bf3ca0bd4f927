package log

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adspendErrors "github.com/YuminosukeSato/adspend/pkg/errors"
)

func TestTestLogger(t *testing.T) {
	logger, buffer := NewTestLogger(LevelDebug)

	logger.Debug("debug message", "key1", "value1", "number", 42)
	logger.Info("info message", OperationKey, OperationFit)
	logger.Warn("warning message")
	logger.Error("error message", adspendErrors.NewValueError("Fit", "boom"), SamplesKey, 3)

	require.NotEmpty(t, buffer.String())
	assert.True(t, logger.ContainsMessage("debug message"))
	assert.True(t, logger.ContainsMessage("warning message"))
	assert.True(t, logger.ContainsField("key1", "value1"))
	assert.True(t, logger.ContainsField("number", 42.0))
	assert.True(t, logger.ContainsField(ErrAttrKey, "adspend: Fit: boom"))
	assert.True(t, logger.ContainsField(SamplesKey, 3.0))

	entries, err := logger.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "ERROR", entries[3]["level"])
}

func TestTestLoggerLevelAndWith(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	assert.True(t, logger.Enabled(ctx, LevelInfo))
	assert.False(t, logger.Enabled(ctx, LevelDebug))

	child := logger.With(ModelNameKey, "LinearRegression", ComponentKey, "linear")
	child.Debug("hidden")
	child.Info("Training started", OperationKey, OperationFit)

	assert.False(t, logger.ContainsMessage("hidden"))
	entries := logger.EntriesWithMessage("Training started")
	require.Len(t, entries, 1)
	assert.Equal(t, "LinearRegression", entries[0][ModelNameKey])
	assert.Equal(t, "linear", entries[0][ComponentKey])
}

func TestTestLoggerProvider(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelDebug)

	provider.GetLogger().Info("provider test message")
	provider.GetLoggerWithName("dataset").Info("named logger message")

	out := buffer.String()
	assert.Contains(t, out, "provider test message")
	assert.Contains(t, out, `"ml.component":"dataset"`)

	provider.SetLevel(LevelError)
	provider.GetLogger().Info("suppressed")
	assert.NotContains(t, buffer.String(), "suppressed")
}

func TestSetProviderSwapsBackend(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelInfo)
	SetProvider(provider)
	defer SetProvider(nil)

	GetLoggerWithName("metrics").Info("via package logger")

	assert.Contains(t, buffer.String(), "via package logger")
	assert.Contains(t, buffer.String(), `"ml.component":"metrics"`)
}

func TestSetupLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetupLogger("debug", "json", &buf))
	defer SetProvider(nil)

	err := adspendErrors.NewIllDefinedError("linear.Fit", "slope", "zero variance")
	GetLoggerWithName("linear").Error("Training failed", err, OperationKey, OperationFit)

	var entry map[string]interface{}
	line := strings.TrimSpace(buf.String())
	require.NoError(t, json.Unmarshal([]byte(line), &entry))

	assert.Equal(t, "ERROR", entry["severity"])
	assert.Equal(t, "Training failed", entry["message"])
	assert.Equal(t, "IllDefinedModel", entry[ErrorKindKey])
	assert.Equal(t, "linear", entry[ComponentKey])
	assert.NotEmpty(t, entry[StacktraceAttrKey])
}

func TestSetupLoggerRejectsUnknownValues(t *testing.T) {
	err := SetupLogger("verbose", "json", &bytes.Buffer{})
	assert.Equal(t, adspendErrors.KindInvalidArgument, adspendErrors.KindOf(err))

	err = SetupLogger("info", "xml", &bytes.Buffer{})
	assert.Equal(t, adspendErrors.KindInvalidArgument, adspendErrors.KindOf(err))
}

func TestZapProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "adspend.log")
	provider, sync, err := NewZapProvider(ZapOptions{Level: "info", Format: "json", OutputFile: path})
	require.NoError(t, err)

	logger := provider.GetLoggerWithName("analysis")
	assert.False(t, logger.Enabled(context.Background(), LevelDebug))

	logger.Info("Stage completed", SamplesKey, 100)
	logger.Error("Stage failed", adspendErrors.NewInsufficientDataError("Evaluate", 2, 1))
	_ = sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "Stage completed")
	assert.Contains(t, out, `"data.samples":100`)
	assert.Contains(t, out, `"error.kind":"InsufficientData"`)

	provider.SetLevel(LevelError)
	assert.False(t, logger.Enabled(context.Background(), LevelInfo))
}

func TestZerologProvider(t *testing.T) {
	var buf bytes.Buffer
	zl, err := NewZerolog(&buf, "json", "info")
	require.NoError(t, err)

	logger := NewZerologProvider(zl).GetLoggerWithName("plotting")
	logger.Debug("hidden")
	logger.Error("Render failed", adspendErrors.NewIllDefinedError("Render", "band", "no residuals"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"error.kind":"IllDefinedModel"`)
	assert.Contains(t, out, `"quantity":"band"`)
	assert.Contains(t, out, `"ml.component":"plotting"`)

	_, err = NewZerolog(&buf, "json", "loud")
	assert.Error(t, err)
}

func TestRouteWarningsToZerolog(t *testing.T) {
	var buf bytes.Buffer
	RouteWarningsToZerolog(zerolog.New(&buf))
	defer adspendErrors.SetZerologWarnFunc(nil)

	adspendErrors.Warn(adspendErrors.NewUndefinedMetricWarning("residual_std_error", "2 test samples", 0))

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"metric":"residual_std_error"`)
}
