// SPDX-License-Identifier: Apache-2.0

// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	log "github.com/sirupsen/logrus"

	"github.com/setlistkit/songimport/internal/config"
)

// Configure sets the level, formatter and output of the standard logger.
func Configure(cfg config.LogConfig, out io.Writer) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(out)

	switch strings.ToLower(cfg.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&nested.Formatter{
			FieldsOrder:     []string{"file", "format"},
			TimestampFormat: time.TimeOnly,
			NoColors:        true,
		})
	}
	return nil
}
