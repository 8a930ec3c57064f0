// utils/response.go
package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/gin-gonic/gin"
)

// RespondWithError sends a JSON error body in the standard envelope.
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"message": message,
	})
}

const randomCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString returns an uppercase alphanumeric string of length n,
// used for invoice number suffixes.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(randomCharset))))
		if err != nil {
			b[i] = randomCharset[0]
			continue
		}
		b[i] = randomCharset[idx.Int64()]
	}
	return string(b)
}
