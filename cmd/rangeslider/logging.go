package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

type logOptions struct {
	Level  string
	Format string
	File   string
}

func (o *logOptions) apply() error {
	level, err := logrus.ParseLevel(strings.TrimSpace(o.Level))
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logrus.SetLevel(level)
	if path := strings.TrimSpace(o.File); path != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})
	} else {
		logrus.SetOutput(os.Stderr)
	}

	switch strings.ToLower(strings.TrimSpace(o.Format)) {
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid --log-format %q: want text or json", o.Format)
	}
	return nil
}

func logger() *logrus.Entry {
	return logrus.NewEntry(logrus.StandardLogger()).WithField("app", "rangeslider")
}
