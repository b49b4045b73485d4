package auth

import (
	"crypto/rand"
	"encoding/base64"
)

// TokenBytes 32 字节 = 256 bit 熵
const TokenBytes = 32

// NewSessionToken 生成随机会话令牌
func NewSessionToken() (string, error) {
	bytes := make([]byte, TokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
