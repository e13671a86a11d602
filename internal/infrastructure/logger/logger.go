package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup configura o logger global da aplicação: JSON para arquivo com
// rotação, texto para o console. O nível vem de LOG_LEVEL (default info).
func Setup() {
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		logrus.Warnf("⚠️ Não foi possível criar diretório de logs '%s': %v", logDir, err)
		return
	}

	fileLogger := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "debriefing-api.log"),
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // dias
		Compress:   true,
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	logrus.SetOutput(io.MultiWriter(os.Stdout, fileLogger))
}
