package otp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerate(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := Generate(DefaultLength)
		require.NoError(t, err)
		assert.Len(t, code, DefaultLength)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code=%q", code)
		}
	}
}

func TestGenerate_ReaderError(t *testing.T) {
	_, err := generateFrom(failingReader{}, DefaultLength)
	assert.Error(t, err)
}
