package crypto

import (
	"crypto/rand"
	"math"
)

const (
	idAlphabet string = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	idSize     int    = 22 // 22 * 6 = 132 bits of entropy, slightly more than a uuid
)

// NewContentID generates a URL-safe random identifier for content items.
func NewContentID() (string, error) {
	return generateID(idSize)
}

func idMask(alphabetLen int) int {
	for i := 1; i <= 8; i++ {
		mask := (2 << uint(i)) - 1
		if mask > alphabetLen-1 {
			return mask
		}
	}
	return 255
}

func generateID(size int) (string, error) {
	alphabetLen := len(idAlphabet)
	mask := idMask(alphabetLen)
	step := int(math.Ceil(1.6 * float64(mask*size) / float64(alphabetLen)))

	id := make([]byte, size)
	buffer := make([]byte, step)

	for position := 0; position < size; {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}

		// Map random bytes to alphabet characters, rejecting out-of-range
		// candidates so the distribution stays uniform.
		for i := 0; i < step && position < size; i++ {
			index := buffer[i] & byte(mask)
			if int(index) < alphabetLen {
				id[position] = idAlphabet[index]
				position++
			}
		}
	}

	return string(id), nil
}
