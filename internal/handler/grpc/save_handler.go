package grpc

import (
	"context"
	"encoding/json"
	"errors"

	"savings-core/internal/save"
	"savings-core/internal/service"
	"savings-core/pkg/errno"
	"savings-core/pkg/logger"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// SaveHandler implements SaveServer
type SaveHandler struct {
	service service.SaveService
}

func NewSaveHandler(svc service.SaveService) *SaveHandler {
	return &SaveHandler{service: svc}
}

var _ SaveServer = (*SaveHandler)(nil)

func (h *SaveHandler) GetState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := req.GetFields()["session_id"].GetStringValue()
	sess, err := h.service.Get(id)
	if err != nil {
		return nil, toStatus(err)
	}
	return sessionStruct(sess, sess.State())
}

func (h *SaveHandler) Dispatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	id := fields["session_id"].GetStringValue()
	name := fields["action"].GetStringValue()

	a, err := actionFromRequest(name, fields["value"].GetStringValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	logger.Debug("[gRPC] Dispatch", zap.String("session", id), zap.String("action", name))

	st, err := h.service.Dispatch(ctx, id, a)
	if err != nil {
		return nil, toStatus(err)
	}
	sess, err := h.service.Get(id)
	if err != nil {
		return nil, toStatus(err)
	}
	return sessionStruct(sess, st)
}

var errUnknownAction = errors.New("unknown action")

// actionFromRequest 只接受用户操作，行情更新由服务端 Poller 投递
func actionFromRequest(name, value string) (save.Action, error) {
	switch name {
	case save.SetAmount{}.Name():
		return save.SetAmount{FormValue: value}, nil
	case save.SetMaxAmount{}.Name():
		return save.SetMaxAmount{}, nil
	case save.ToggleTransactionType{}.Name():
		return save.ToggleTransactionType{}, nil
	default:
		return nil, errUnknownAction
	}
}

// sessionStruct 与 HTTP 接口相同的 JSON 结构
func sessionStruct(sess *service.Session, st save.State) (*structpb.Struct, error) {
	raw, err := json.Marshal(map[string]interface{}{
		"id":      sess.ID,
		"account": sess.Account,
		"version": sess.Version,
		"state":   st,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func toStatus(err error) error {
	code, msg := errno.Decode(err)
	switch code {
	case errno.ErrSessionNotFound.Code:
		return status.Error(codes.NotFound, msg)
	case errno.ErrSessionClosed.Code:
		return status.Error(codes.FailedPrecondition, msg)
	case errno.ErrInvalidAccount.Code, errno.ErrInvalidVersion.Code:
		return status.Error(codes.InvalidArgument, msg)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}
	logger.Error("[gRPC] 请求失败", zap.Error(err))
	return status.Error(codes.Internal, errno.InternalServerError.Message)
}
