package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0s"},
		{4.21, "4.2s"},
		{59.9, "59.9s"},
		{60, "1m 0.0s"},
		{125, "2m 5.0s"},
		{3600, "1h 0m"},
		{3725, "1h 2m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Seconds(tt.in), "Seconds(%v)", tt.in)
	}
}

func TestFileSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5 MB"},
		{3 * 1024 * 1024 * 1024, "3 GB"},
		{2048 * 1024 * 1024 * 1024, "2048 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileSize(tt.in), "FileSize(%d)", tt.in)
	}
}

func TestScore(t *testing.T) {
	assert.Equal(t, "12.3/15", Score(12.34, 15))
	assert.Equal(t, "0.0/15", Score(0, 15))
}
