package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"time"

	handler_grpc "savings-core/internal/handler/grpc"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
)

// 手动联调: 先通过 HTTP 创建会话，再用 gRPC 操作同一个会话
func main() {
	addr := flag.String("addr", "127.0.0.1:50051", "gRPC address")
	httpAddr := flag.String("http", "http://127.0.0.1:8080", "HTTP base URL")
	sessionID := flag.String("session", "", "existing session id (empty: create one over HTTP)")
	account := flag.String("account", "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", "saver address")
	flag.Parse()

	// Set up a connection to the server.
	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	defer conn.Close()
	c := handler_grpc.NewSaveClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id := *sessionID
	if id == "" {
		id = createSession(ctx, *httpAddr, *account)
	}

	// Test 1: 当前状态
	r, err := c.GetState(ctx, id)
	if err != nil {
		log.Fatalf("could not get state: %v", err)
	}
	log.Printf("State: %s", protojson.Format(r))

	// Test 2: 输入金额
	r, err = c.Dispatch(ctx, id, "SET_AMOUNT", "1.5")
	if err != nil {
		log.Fatalf("could not dispatch: %v", err)
	}
	log.Printf("After SET_AMOUNT: %s", protojson.Format(r))

	// Test 3: 切换到取出并填最大值
	if _, err := c.Dispatch(ctx, id, "TOGGLE_TRANSACTION_TYPE", ""); err != nil {
		log.Fatalf("could not toggle: %v", err)
	}
	r, err = c.Dispatch(ctx, id, "SET_MAX_AMOUNT", "")
	if err != nil {
		log.Fatalf("could not set max: %v", err)
	}
	log.Printf("After SET_MAX_AMOUNT: %s", protojson.Format(r))
}

func createSession(ctx context.Context, base, account string) string {
	body := bytes.NewBufferString(`{"account":"` + account + `"}`)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/v1/save/sessions", body)
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("create session: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Fatalf("decode response: %v", err)
	}
	if out.Code != 0 {
		log.Fatalf("create session failed: %d %s", out.Code, out.Msg)
	}
	log.Printf("Session: %s", out.Data.ID)
	return out.Data.ID
}
