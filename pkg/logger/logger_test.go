package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_JSONConCampoServicio: fuera de development la salida es JSON y cada
// evento lleva el campo servicio.
func TestNew_JSONConCampoServicio(t *testing.T) {
	var buf bytes.Buffer
	zl := New(Config{Env: "production", Level: "info", Service: "facturacion", Out: &buf})

	zl.Info().Msg("arranque")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"servicio":"facturacion"`)
	assert.Contains(t, out, `"message":"arranque"`)
}

// TestNew_RespetaElNivel: bajo el nivel configurado no se emite nada.
func TestNew_RespetaElNivel(t *testing.T) {
	var buf bytes.Buffer
	zl := New(Config{Env: "production", Level: "warn", Service: "facturacion", Out: &buf})

	zl.Info().Msg("silenciado")
	assert.Empty(t, buf.String())

	zl.Warn().Msg("visible")
	assert.Contains(t, buf.String(), `"visible"`)
}

// TestNew_NivelInvalidoCaeAInfo
func TestNew_NivelInvalidoCaeAInfo(t *testing.T) {
	var buf bytes.Buffer
	zl := New(Config{Env: "production", Level: "verboso", Service: "facturacion", Out: &buf})

	zl.Debug().Msg("silenciado")
	assert.Empty(t, buf.String())

	zl.Info().Msg("visible")
	assert.Contains(t, buf.String(), `"visible"`)
}
