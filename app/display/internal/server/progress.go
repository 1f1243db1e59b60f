package server

import (
	"encoding/json"
	nethttp "net/http"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/gorilla/websocket"

	"github.com/iWorld-y/finance_report/app/display/internal/usecase"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 20 * time.Second
	writeWait    = 10 * time.Second
	subscriberQ  = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *nethttp.Request) bool { return true },
}

// ProgressHub 把报告进度广播给所有 websocket 订阅者，慢订阅者会丢事件
type ProgressHub struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}
	log  *log.Helper
}

func NewProgressHub(logger log.Logger) *ProgressHub {
	return &ProgressHub{subs: make(map[chan []byte]struct{}), log: log.NewHelper(logger)}
}

// Publish 实现 usecase.ProgressPublisher
func (h *ProgressHub) Publish(ev usecase.ProgressEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Errorf("marshal progress event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Subscribers 当前订阅者数量
func (h *ProgressHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *ProgressHub) subscribe() chan []byte {
	ch := make(chan []byte, subscriberQ)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *ProgressHub) unsubscribe(ch chan []byte) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// ServeHTTP 升级为 websocket 并持续推送进度事件
func (h *ProgressHub) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// 读协程只丢弃客户端消息，连接断开时通知写循环退出
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			return
		case msg := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
