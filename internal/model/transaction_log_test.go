package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{TxStatusPending, TxStatusSubmitted, true},
		{TxStatusPending, TxStatusConfirmed, true},
		{TxStatusPending, TxStatusFailed, true},
		{TxStatusSubmitted, TxStatusConfirmed, true},
		{TxStatusSubmitted, TxStatusFailed, true},
		{TxStatusSubmitted, TxStatusSubmitted, false},
		{TxStatusConfirmed, TxStatusSubmitted, false},
		{TxStatusConfirmed, TxStatusFailed, false},
		{TxStatusFailed, TxStatusConfirmed, false},
		{TxStatusSubmitted, TxStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestDescriptionFollowsStatus(t *testing.T) {
	l := TransactionLog{Present: "Depositing 10.00 mUSD", Past: "Deposited 10.00 mUSD", Status: TxStatusSubmitted}
	assert.Equal(t, l.Present, l.Description())
	l.Status = TxStatusConfirmed
	assert.Equal(t, l.Past, l.Description())
}
