package safe_random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateRandomBytes 生成 n 字节的安全随机数
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("生成随机字节失败: %w", err)
	}
	return b, nil
}

// GenerateRandomHexString 返回 Hex 编码的随机串，长度是 n 的两倍
func GenerateRandomHexString(n int) (string, error) {
	b, err := GenerateRandomBytes(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewID 生成带前缀的随机 ID，例如 "sav_3f9a..."
func NewID(prefix string) (string, error) {
	s, err := GenerateRandomHexString(16)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}
