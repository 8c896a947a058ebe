package crypto_util

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// Keccak256 计算输入的 Keccak256 哈希值 (以太坊使用的哈希算法)
func Keccak256(data ...[]byte) []byte {
	hash := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hash.Write(d)
	}
	return hash.Sum(nil)
}

// CalculateKeccak256 返回 Keccak256 的 Hex 字符串
func CalculateKeccak256(data []byte) string {
	return hex.EncodeToString(Keccak256(data))
}

// CalculateBlake3 计算输入的 Blake3 哈希值。
// 用于交易指纹和缓存 Key，不涉及链上校验
func CalculateBlake3(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}
