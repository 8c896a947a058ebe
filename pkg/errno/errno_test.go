package errno

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"nil", nil, OK.Code, OK.Message},
		{"值类型", ErrSessionNotFound, ErrSessionNotFound.Code, ErrSessionNotFound.Message},
		{"指针类型", &ErrDatabase, ErrDatabase.Code, ErrDatabase.Message},
		{"被包装", fmt.Errorf("create session: %w", ErrInvalidVersion), ErrInvalidVersion.Code, ErrInvalidVersion.Message},
		{"普通错误", errors.New("boom"), InternalServerError.Code, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := Decode(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.msg, msg)
		})
	}
}
