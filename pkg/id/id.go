package id

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/8/29 14:20
 * @file: id.go
 * @description: identifier helpers
 */

// GetUUID 生成标准 UUID，用于用户主键
func GetUUID() string {
	return uuid.NewString()
}

// GetUUIDWithoutDashes 生成去掉横线的 UUID
func GetUUIDWithoutDashes() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GetHex returns n random bytes hex-encoded, used for team, invitation
// and brand identifiers.
func GetHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process has no entropy source;
		// fall back to a UUID rather than return a guessable id.
		return GetUUIDWithoutDashes()
	}
	return hex.EncodeToString(b)
}
