package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== RECOVERY PASSWORD ====================

// Ambiguous glyphs (0/O, 1/l/I) are left out, guests copy this by hand.
const recoveryAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func GenerateRecoveryPassword(length int) (string, error) {
	if length <= 0 {
		length = 8
	}

	max := big.NewInt(int64(len(recoveryAlphabet)))
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate recovery password: %w", err)
		}
		sb.WriteByte(recoveryAlphabet[n.Int64()])
	}

	return sb.String(), nil
}

// ==================== OBJECT PATH ====================

// GenerateObjectPath builds "<prefix>/<YYYYMM>/<uuid><ext>" from an upload's
// path hint, keeping only the extension of the original file name.
func GenerateObjectPath(prefix, fileName string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = "images"
	}
	ext := strings.ToLower(path.Ext(fileName))

	return fmt.Sprintf("%s/%s/%s%s", prefix, time.Now().Format("200601"), uuid.New().String(), ext)
}
