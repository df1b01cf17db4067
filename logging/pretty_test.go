package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettyLogger(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrettyLogger(&buf)

	p.Success("Uploaded report.pdf")
	p.Field("models", 3)
	p.Warn("1 of 2 uploads failed")
	p.Error("Comparison failed", errors.New("HTTP 500"))
	p.Error("Cancelled", nil)

	assert.Equal(t,
		"✓ Uploaded report.pdf\n  models: 3\n⚠ 1 of 2 uploads failed\n✗ Comparison failed: HTTP 500\n✗ Cancelled\n",
		buf.String())
}
