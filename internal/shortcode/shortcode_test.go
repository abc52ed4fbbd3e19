package shortcode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"smokeysalmons/internal/shortcode"
)

const orderAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	g := shortcode.NewGenerator(orderAlphabet, 6)

	for i := 0; i < 100; i++ {
		code, err := g.Generate()
		assert.NoError(t, err)
		assert.Equal(t, 6, len(code))
		for _, c := range code {
			assert.True(t, strings.ContainsRune(orderAlphabet, c), "unexpected char %q in %q", c, code)
		}
	}
}

func TestGenerate_ExcludesAmbiguousChars(t *testing.T) {
	//0/O と 1/I はアルファベットに含めない運用
	assert.False(t, strings.ContainsAny(orderAlphabet, "0O1I"))
}

func TestGenerate_SingleCharAlphabet(t *testing.T) {
	g := shortcode.NewGenerator("A", 4)

	code, err := g.Generate()
	assert.NoError(t, err)
	assert.Equal(t, "AAAA", code)
}
