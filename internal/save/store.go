package save

import (
	"context"
	"errors"
	"sync"
)

var ErrStoreClosed = errors.New("save: store is closed")

type envelope struct {
	action Action
	result chan State
}

// Store 持有一个表单的状态
// 所有 Action (用户操作和行情更新) 进入同一个队列，由 Run 的单个 goroutine 依次处理，
// 因此任意两个 Action 的处理不会交错
type Store struct {
	machine Machine
	queue   chan envelope
	done    chan struct{}

	mu          sync.RWMutex
	state       State
	subscribers []chan State
}

// NewStore 创建 Store，需要调用 Run 才会开始处理 Action
func NewStore(m Machine) *Store {
	return &Store{
		machine: m,
		queue:   make(chan envelope, 16),
		done:    make(chan struct{}),
		state:   m.Initial(),
	}
}

func (st *Store) Version() Version {
	return st.machine.Version()
}

// State 返回最新状态 (值拷贝)
func (st *Store) State() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state
}

// Subscribe 每次状态转换后推送最新状态
// 消费慢时只保留最新的一个；Run 结束后 channel 被关闭，之后订阅直接拿到已关闭的 channel
func (st *Store) Subscribe() <-chan State {
	ch := make(chan State, 1)
	st.mu.Lock()
	defer st.mu.Unlock()
	select {
	case <-st.done:
		close(ch)
	default:
		st.subscribers = append(st.subscribers, ch)
	}
	return ch
}

// Run 事件循环，阻塞直到 ctx 取消
func (st *Store) Run(ctx context.Context) {
	defer func() {
		close(st.done)
		st.mu.Lock()
		for _, ch := range st.subscribers {
			close(ch)
		}
		st.subscribers = nil
		st.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case env := <-st.queue:
			next := st.machine.Transition(st.State(), env.action)
			st.publish(next)
			env.result <- next
		}
	}
}

// Dispatch 把 Action 放入队列并等待处理结果
func (st *Store) Dispatch(ctx context.Context, a Action) (State, error) {
	env := envelope{action: a, result: make(chan State, 1)}

	select {
	case st.queue <- env:
	case <-st.done:
		return State{}, ErrStoreClosed
	case <-ctx.Done():
		return State{}, ctx.Err()
	}

	select {
	case s := <-env.result:
		return s, nil
	case <-st.done:
		return State{}, ErrStoreClosed
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

func (st *Store) publish(s State) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = s
	for _, ch := range st.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}
