package reporter

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrintStream(t *testing.T) {
	var buf bytes.Buffer
	printStream(&buf, "Stdout", "no newline", 10, false)
	assert.Equal(t, "Stdout:\nno newline\n", buf.String())

	buf.Reset()
	printStream(&buf, "Stderr", "tail\n", 2048, true)
	assert.Equal(t, "Stderr (last 5 B of 2.0 KiB):\ntail\n", buf.String())
}

func TestPrintIndented(t *testing.T) {
	var buf bytes.Buffer
	printIndented(&buf, "Logs", "one\ntwo\n")
	assert.Equal(t, "Logs:\n    one\n    two\n", buf.String())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "0.0s", formatDuration(0))
}
