package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New - JSON-логгер сервера в stdout
func New(logLevel string) *logrus.Logger {
	return build(logLevel, os.Stdout, &logrus.JSONFormatter{})
}

// NewConsole - текстовый логгер для CLI панели. Пишет в stderr, чтобы не смешиваться с выводом команд.
func NewConsole(logLevel string) *logrus.Logger {
	return build(logLevel, os.Stderr, &logrus.TextFormatter{FullTimestamp: true})
}

func build(logLevel string, out io.Writer, formatter logrus.Formatter) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(formatter)

	log.SetOutput(out)

	// Уровень логирования
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // Уровень по умолчанию, если передан некорректный
	}
	log.SetLevel(level)
	return log
}
