package bip32

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
)

// EthereumAccountPath BIP-44 以太坊账户路径模板，最后一段是账户序号
const EthereumAccountPath = "m/44'/60'/0'/0/%d"

// ExtendedKey 包装了 BIP-32 扩展密钥
type ExtendedKey interface {
	// String 返回 Base58 编码的密钥字符串 (xprv... / xpub...)
	String() string
	// ECPubKey 获取底层的 EC 公钥
	ECPubKey() (*btcec.PublicKey, error)
	// Derive 根据索引派生子密钥
	Derive(index uint32) (ExtendedKey, error)
	// IsPrivate 返回是否包含私钥
	IsPrivate() bool
	// Neuter 返回对应的扩展公钥
	Neuter() (ExtendedKey, error)
}

// HDWallet 分层确定性钱包
// 这里只用来从助记词推导储户的以太坊地址，不做签名
type HDWallet interface {
	MasterKey() ExtendedKey
	// DerivePath 根据路径 (如 "m/44'/60'/0'/0/0") 派生密钥
	DerivePath(path string) (ExtendedKey, error)
}

var (
	ErrInvalidSeed = errors.New("无效的种子")
	ErrInvalidPath = errors.New("无效的派生路径")
)
