package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLogger() {
	logger, err := NewLogger()
	suite.NoError(err)
	suite.NotNil(logger)
	suite.NotNil(logger.Logger)
}

func (suite *LoggerTestSuite) TestNewLoggerWithLevel() {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := NewLoggerWithLevel(level)
		suite.NoError(err, level)
		suite.NotNil(logger)
	}

	_, err := NewLoggerWithLevel("verbose")
	suite.Error(err)
	suite.Contains(err.Error(), "invalid log level")
}

func (suite *LoggerTestSuite) TestLoggerSyncNilLogger() {
	logger := &Logger{Logger: nil}
	suite.NoError(logger.Sync())
}

func (suite *LoggerTestSuite) TestNopLogger() {
	logger := NewNopLogger().Named("overlay")

	// These should not panic
	logger.Info("test info message")
	logger.Debug("test debug message")
	logger.Warn("test warn message")
	logger.Error("test error message")
	suite.NoError(logger.Sync())
}

func (suite *LoggerTestSuite) TestNewLoggerWithOutput() {
	path := filepath.Join(suite.T().TempDir(), "argo.log")

	logger, err := NewLoggerWithOutput("info", path)
	suite.Require().NoError(err)

	logger.Info("written to file", zap.String("symbol", "AAPL"))
	logger.Debug("below level")
	suite.NoError(logger.Sync())

	data, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.Contains(string(data), `"msg":"written to file"`)
	suite.Contains(string(data), `"symbol":"AAPL"`)
	suite.NotContains(string(data), "below level")
}
