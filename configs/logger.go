package configs

import (
	"go.uber.org/zap"

	"listloop-server/pkg/logger"
)

// Logger is the process-wide zap logger, valid after Init.
var Logger *zap.Logger = zap.NewNop()

// InitLogger builds the process logger from the loaded Logs config.
func InitLogger() error {
	output := "stdout"
	if !Configs.Logs.StdoutOnly && Configs.Logs.LogPath != "" {
		output = "file"
	}

	l, err := logger.NewZapLogger(logger.Config{
		Level:    Configs.Logs.LogLevel,
		Format:   Configs.Logs.LogFormat,
		Output:   output,
		FilePath: Configs.Logs.LogPath,
	})
	if err != nil {
		return err
	}

	Logger = l
	return nil
}
