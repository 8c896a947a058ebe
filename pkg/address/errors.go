package address

import "errors"

var ErrInvalidPubKey = errors.New("公钥长度无效")
