package code

import (
	"crypto/rand"
	"fmt"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_code.go github.com/livetally/livetally/internal/common/code Generator

// Length is the fixed length of a session code.
const Length = 6

// alphabet is the uppercase-alphanumeric set session codes are drawn from.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator produces short session codes
type Generator interface {
	NewCode() string
}

// DefaultGenerator implements Generator using crypto/rand

type DefaultGenerator struct{}

func New() *DefaultGenerator {
	return &DefaultGenerator{}
}

// NewCode returns a fixed-length uppercase-alphanumeric code
func (g *DefaultGenerator) NewCode() string {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("code: reading random bytes: %v", err))
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}
