// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setlistkit/songimport/internal/config"
)

func TestConfigure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Configure(config.LogConfig{Level: "warn", Format: "json"}, &buf))

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Equal(t, log.WarnLevel, log.GetLevel())
}

func TestConfigure_BadLevel(t *testing.T) {
	err := Configure(config.LogConfig{Level: "loud", Format: "text"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "log level")
}

func TestConfigure_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Configure(config.LogConfig{Level: "info", Format: "text"}, &buf))

	log.WithField("file", "a.cho").Info("parsed")

	assert.Contains(t, buf.String(), "parsed")
	assert.Contains(t, buf.String(), "a.cho")
}
