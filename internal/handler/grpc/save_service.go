package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// 没有 .proto 代码生成，请求和响应都是 google.protobuf.Struct
const (
	SaveServiceName    = "savings.v1.SaveService"
	getStateMethod     = "/" + SaveServiceName + "/GetState"
	dispatchMethod     = "/" + SaveServiceName + "/Dispatch"
	saveServiceProtoID = "savings/v1/save.proto"
)

// SaveServer 服务端接口
type SaveServer interface {
	// GetState {session_id} -> {id, account, version, state}
	GetState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	// Dispatch {session_id, action, value} -> {id, account, version, state}
	Dispatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

func getStateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SaveServer).GetState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getStateMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SaveServer).GetState(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func dispatchHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SaveServer).Dispatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: dispatchMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SaveServer).Dispatch(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// SaveServiceDesc 手写的服务描述，用 grpc.Server.RegisterService 注册
var SaveServiceDesc = grpc.ServiceDesc{
	ServiceName: SaveServiceName,
	HandlerType: (*SaveServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetState", Handler: getStateHandler},
		{MethodName: "Dispatch", Handler: dispatchHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: saveServiceProtoID,
}

// SaveClient 客户端
type SaveClient struct {
	cc grpc.ClientConnInterface
}

func NewSaveClient(cc grpc.ClientConnInterface) *SaveClient {
	return &SaveClient{cc: cc}
}

func (c *SaveClient) GetState(ctx context.Context, sessionID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(map[string]interface{}{"session_id": sessionID})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getStateMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Dispatch action 取值见 actionFromRequest，value 只对 SET_AMOUNT 有效
func (c *SaveClient) Dispatch(ctx context.Context, sessionID, action, value string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(map[string]interface{}{
		"session_id": sessionID,
		"action":     action,
		"value":      value,
	})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, dispatchMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
