package routes

import (
	"google.golang.org/grpc"

	handler_grpc "savings-core/internal/handler/grpc"
	"savings-core/internal/service"
)

// RegisterSaveGRPC 注册 SaveService gRPC 服务
func RegisterSaveGRPC(s *grpc.Server, saveService service.SaveService) {
	s.RegisterService(&handler_grpc.SaveServiceDesc, handler_grpc.NewSaveHandler(saveService))
}
