// Package gameid generates sortable identifiers for games.
//
// IDs are UUIDv7 values rendered as 26 characters of Crockford base32, the
// same shape TypeID uses, so they sort by creation time.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford base32, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID.
const Length = 26

// Generator produces IDs, optionally from a caller-supplied entropy source.
type Generator struct {
	entropy io.Reader
}

// NewGenerator returns a Generator reading random bits from entropy. A nil
// reader uses crypto/rand.
func NewGenerator(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate returns a new ID using crypto/rand.
func Generate() string {
	id, err := NewGenerator(nil).Generate()
	if err != nil {
		panic("gameid: " + err.Error())
	}
	return id
}

// Generate returns a new ID.
func (g *Generator) Generate() (string, error) {
	var (
		u   uuid.UUID
		err error
	)
	if g.entropy != nil {
		u, err = uuid.NewV7FromReader(g.entropy)
	} else {
		u, err = uuid.NewV7()
	}
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return Encode(u), nil
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are left
// padded with two zero bits so the first character is always 0-7.
func Encode(u uuid.UUID) string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		var v byte
		for j := 0; j < 5; j++ {
			v = v<<1 | bitAt(u, i*5+j-2)
		}
		b.WriteByte(alphabet[v])
	}
	return b.String()
}

func bitAt(u uuid.UUID, pos int) byte {
	if pos < 0 {
		return 0
	}
	return (u[pos/8] >> (7 - pos%8)) & 1
}

// Validate checks that id is 26 characters of the base32 alphabet with a
// leading character no greater than '7'.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
