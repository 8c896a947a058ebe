package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"savings-core/internal/marketdata"
	"savings-core/internal/save"
	"savings-core/internal/service"
	"savings-core/pkg/amount"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func newTestClient(t *testing.T) (*SaveClient, *service.SessionService) {
	t.Helper()
	balance := amount.MustParse("100", 18)
	rate := amount.MustParse("1", amount.RateDecimals)
	provider := marketdata.NewStaticProvider(save.MarketData{
		Token:   save.TokenData{Symbol: "mUSD", Decimals: 18, Balance: &balance, Allowance: &balance},
		Savings: save.SavingsData{ExchangeRate: &rate, CreditBalance: &balance, CreditDecimals: 18, SavingsBalance: &balance},
	})
	svc := service.NewSessionService(service.SessionConfig{PollInterval: time.Hour}, provider, service.NewMemoryTransactionRepository())

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	srv.RegisterService(&SaveServiceDesc, NewSaveHandler(svc))
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
		svc.Shutdown()
	})
	return NewSaveClient(conn), svc
}

func TestGRPCDispatch(t *testing.T) {
	client, svc := newTestClient(t)
	ctx := context.Background()

	sess, err := svc.Create(ctx, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", "v2")
	require.NoError(t, err)

	out, err := client.GetState(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", out.Fields["version"].GetStringValue())

	out, err = client.Dispatch(ctx, sess.ID, "SET_AMOUNT", "150")
	require.NoError(t, err)
	state := out.Fields["state"].GetStructValue().GetFields()
	assert.Equal(t, "150", state["form_value"].GetStringValue())
	assert.False(t, state["valid"].GetBoolValue())
	assert.Equal(t, string(save.ReasonDepositAmountMustNotExceedTokenBalance), state["error"].GetStringValue())

	out, err = client.Dispatch(ctx, sess.ID, "TOGGLE_TRANSACTION_TYPE", "")
	require.NoError(t, err)
	state = out.Fields["state"].GetStructValue().GetFields()
	assert.Equal(t, "WITHDRAW", state["transaction_type"].GetStringValue())
}

func TestGRPCErrors(t *testing.T) {
	client, svc := newTestClient(t)
	ctx := context.Background()

	_, err := client.GetState(ctx, "sav_missing")
	assert.Equal(t, codes.NotFound, status.Code(err))

	sess, err := svc.Create(ctx, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", "")
	require.NoError(t, err)

	// 行情只能由服务端投递
	_, err = client.Dispatch(ctx, sess.ID, "RECEIVE_MARKET_DATA", "")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
