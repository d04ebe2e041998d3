package logging

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// Configure sets up the global logrus logger. format is "text" or "json".
func Configure(level, format string, out io.Writer) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	log.SetOutput(out)

	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
	return nil
}
