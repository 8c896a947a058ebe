package address

import (
	"encoding/hex"
	"strings"

	"savings-core/pkg/crypto_util"
)

// ETHGenerator 以太坊地址生成器
type ETHGenerator struct{}

func NewETHGenerator() *ETHGenerator {
	return &ETHGenerator{}
}

// PubKeyToAddress 将公钥字节 (非压缩格式, 65 bytes, 0x04...) 转换为 EIP-55 地址
func (g *ETHGenerator) PubKeyToAddress(pubKeyBytes []byte) (string, error) {
	if len(pubKeyBytes) == 65 && pubKeyBytes[0] == 0x04 {
		pubKeyBytes = pubKeyBytes[1:]
	}
	if len(pubKeyBytes) != 64 {
		return "", ErrInvalidPubKey
	}

	// Keccak-256 后取后 20 字节
	hash := crypto_util.Keccak256(pubKeyBytes)
	addressHex := hex.EncodeToString(hash[12:])
	return "0x" + ToChecksumAddress(addressHex), nil
}

// ToChecksumAddress 实现 EIP-55 混合大小写校验，输入可以带 0x 前缀
func ToChecksumAddress(address string) string {
	address = strings.ToLower(strings.TrimPrefix(address, "0x"))
	hexHash := crypto_util.CalculateKeccak256([]byte(address))

	var sb strings.Builder
	for i := 0; i < len(address); i++ {
		char := address[i]
		// hash 第 i 位 >= 8 时大写
		if hexCharToInt(hexHash[i]) >= 8 {
			sb.WriteString(strings.ToUpper(string(char)))
		} else {
			sb.WriteByte(char)
		}
	}
	return sb.String()
}

func hexCharToInt(c byte) byte {
	if c >= '0' && c <= '9' {
		return c - '0'
	}
	if c >= 'a' && c <= 'f' {
		return c - 'a' + 10
	}
	return 0
}
