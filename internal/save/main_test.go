package save

import (
	"testing"

	"go.uber.org/goleak"
)

// Store 的事件循环在 ctx 取消后必须退出
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
