// cmd/server/main.go
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/javajoker/soundwave/internal/config"
)

func main() {
	app := &cli.App{
		Name:  "soundwave",
		Usage: "SoundWave music gear storefront",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			catalogCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("soundwave exited with error")
	}
}

// newLogger logs JSON in production and text everywhere else.
func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	// gorm and the database package log through the standard logger
	logrus.SetFormatter(log.Formatter)
	logrus.SetLevel(level)

	return log
}
