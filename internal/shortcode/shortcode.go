package shortcode

import (
	"crypto/rand"
	"math/big"
)

// Generatorは人が読める注文コードを作る。
// 一様ランダムなだけで一意性は保証しないので、保存側でuniqueIndex＋リトライする。
type Generator struct {
	alphabet string
	length   int
}

func NewGenerator(alphabet string, length int) *Generator {
	return &Generator{alphabet: alphabet, length: length}
}

func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.length)
	max := big.NewInt(int64(len(g.alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = g.alphabet[n.Int64()]
	}
	return string(buf), nil
}
