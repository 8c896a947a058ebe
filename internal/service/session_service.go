package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"savings-core/internal/marketdata"
	"savings-core/internal/save"
	"savings-core/pkg/errno"
	"savings-core/pkg/logger"
	"savings-core/pkg/monitor"
	"savings-core/pkg/safe_random"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// SessionConfig 会话依赖的链上配置
type SessionConfig struct {
	Token          string // mAsset 合约地址
	Savings        string // 储蓄合约地址
	PollInterval   time.Duration
	DefaultVersion save.Version
	TxTopic        string
}

// Session 一个存取表单
type Session struct {
	ID        string
	Account   string
	Version   save.Version
	CreatedAt time.Time

	store  *save.Store
	cancel context.CancelFunc
}

// State 当前状态快照
func (s *Session) State() save.State {
	return s.store.State()
}

// SessionService 管理所有表单会话
// 每个会话有独立的 Store 事件循环和行情 Poller，生命周期挂在 root context 上
type SessionService struct {
	cfg      SessionConfig
	provider marketdata.Provider
	txs      TransactionRepository

	root context.Context
	stop context.CancelFunc

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionService(cfg SessionConfig, provider marketdata.Provider, txs TransactionRepository) *SessionService {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 15 * time.Second
	}
	if cfg.DefaultVersion == "" {
		cfg.DefaultVersion = save.V1
	}
	root, stop := context.WithCancel(context.Background())
	return &SessionService{
		cfg:      cfg,
		provider: provider,
		txs:      txs,
		root:     root,
		stop:     stop,
		sessions: make(map[string]*Session),
	}
}

// Create 创建会话并同步拉取第一份行情
// 首次拉取失败不影响创建，表单停留在 FETCHING_DATA 直到 Poller 重试成功
func (s *SessionService) Create(ctx context.Context, account, version string) (*Session, error) {
	if !common.IsHexAddress(account) {
		return nil, errno.ErrInvalidAccount
	}
	v, err := save.ParseVersion(version, s.cfg.DefaultVersion)
	if err != nil {
		return nil, errno.ErrInvalidVersion
	}

	id, err := safe_random.NewID("sav")
	if err != nil {
		return nil, fmt.Errorf("生成会话ID失败: %w", err)
	}

	sctx, cancel := context.WithCancel(s.root)
	sess := &Session{
		ID:        id,
		Account:   common.HexToAddress(account).Hex(),
		Version:   v,
		CreatedAt: time.Now().UTC(),
		store:     save.NewStore(save.NewMachine(v)),
		cancel:    cancel,
	}

	updates := sess.store.Subscribe()
	go sess.store.Run(sctx)
	go s.observe(sess, updates)

	poller := marketdata.NewPoller(s.provider, marketdata.Query{
		Account: sess.Account,
		Token:   s.cfg.Token,
		Savings: s.cfg.Savings,
	}, sess.store, s.cfg.PollInterval)

	if err := poller.Poll(ctx); err != nil {
		logger.Warn("首次拉取行情失败",
			zap.String("session", id),
			zap.Error(err))
	}
	go func() {
		// Poll 已经执行过一次，等一个周期再进入循环
		select {
		case <-sctx.Done():
			return
		case <-time.After(s.cfg.PollInterval):
		}
		poller.Run(sctx)
	}()

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	if m := monitor.Business; m != nil {
		m.SessionsActive.Inc()
	}
	logger.Info("创建储蓄会话",
		zap.String("session", id),
		zap.String("account", sess.Account),
		zap.String("version", string(v)))
	return sess, nil
}

// Get 查找会话
func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, errno.ErrSessionNotFound
	}
	return sess, nil
}

// Dispatch 向会话投递 Action，返回处理后的状态
func (s *SessionService) Dispatch(ctx context.Context, id string, a save.Action) (save.State, error) {
	sess, err := s.Get(id)
	if err != nil {
		return save.State{}, err
	}
	if m := monitor.Business; m != nil {
		m.ActionsTotal.WithLabelValues(a.Name()).Inc()
	}

	st, err := sess.store.Dispatch(ctx, a)
	if errors.Is(err, save.ErrStoreClosed) {
		return save.State{}, errno.ErrSessionClosed
	}
	return st, err
}

// Close 停止会话的事件循环和 Poller
func (s *SessionService) Close(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return errno.ErrSessionNotFound
	}
	sess.cancel()
	if m := monitor.Business; m != nil {
		m.SessionsActive.Dec()
	}
	logger.Info("关闭储蓄会话", zap.String("session", id))
	return nil
}

// Shutdown 关闭所有会话
func (s *SessionService) Shutdown() {
	s.stop()
	s.mu.Lock()
	n := len(s.sessions)
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	if m := monitor.Business; m != nil {
		m.SessionsActive.Sub(float64(n))
	}
}

// History 会话已提交的交易
func (s *SessionService) History(ctx context.Context, id string) ([]TransactionView, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	logs, err := s.txs.ListBySession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errno.ErrDatabase, err)
	}
	views := make([]TransactionView, 0, len(logs))
	for _, l := range logs {
		views = append(views, newTransactionView(l))
	}
	return views, nil
}

// observe 记录每次状态转换后的校验结果
func (s *SessionService) observe(sess *Session, updates <-chan save.State) {
	for st := range updates {
		reason := string(st.Error)
		if st.Valid {
			reason = "valid"
		}
		if m := monitor.Business; m != nil {
			m.ValidationTotal.WithLabelValues(string(st.TransactionType), reason).Inc()
		}
		logger.Debug("状态更新",
			zap.String("session", sess.ID),
			zap.String("type", string(st.TransactionType)),
			zap.String("form_value", st.FormValue),
			zap.Bool("valid", st.Valid),
			zap.String("reason", string(st.Error)))
	}
}
