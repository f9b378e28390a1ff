package backup

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a logger that appends to the run log file. The returned function flushes the
// logger and closes the file.
func newLogger(file string, debug bool) (*zap.SugaredLogger, func(), error) {
	f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0660)
	if err != nil {
		return nil, nil, err
	}

	encoder := zap.NewProductionEncoderConfig()
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder.ConsoleSeparator = " - "

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoder), zapcore.AddSync(f), level)
	logger := zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel)).Named("smartsheet-backup")

	closer := func() {
		logger.Sync()
		f.Close()
	}

	return logger.Sugar(), closer, nil
}
