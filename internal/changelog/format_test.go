package changelog

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestFormatVersions(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		versions []string
		opts     FormatOptions
		want     string
	}{
		"plain": {
			versions: []string{"1.0.0", "1.0.1"},
			opts:     FormatOptions{Plain: true},
			want:     "1.0.0\n1.0.1\n",
		},
		"non terminal writer is never styled": {
			versions: []string{"2.0.0"},
			opts:     FormatOptions{Plain: false},
			want:     "2.0.0\n",
		},
		"empty list": {
			versions: nil,
			opts:     FormatOptions{},
			want:     "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, FormatVersions(tt.versions, &buf, tt.opts))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFormatVersionsWriteError(t *testing.T) {
	t.Parallel()

	err := FormatVersions([]string{"1.0.0"}, failingWriter{}, FormatOptions{Plain: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing version 1.0.0")
}
