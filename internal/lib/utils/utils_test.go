package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]any{"status": "healthy"}))
	assert.Equal(t, "{\n  \"status\": \"healthy\"\n}\n", buf.String())
}

func TestWriteJSONUnsupported(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteJSON(&buf, make(chan int)))
	assert.Empty(t, buf.String())
}
