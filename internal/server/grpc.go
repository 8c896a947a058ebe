package server

import (
	"google.golang.org/grpc"

	"savings-core/internal/server/routes"
	"savings-core/internal/service"
)

// NewGRPCServer 初始化并注册 gRPC 服务
func NewGRPCServer(saveService service.SaveService) *grpc.Server {
	s := grpc.NewServer()
	routes.RegisterSaveGRPC(s, saveService)
	return s
}
