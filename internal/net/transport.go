package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// MsgHistory carries the full serialized history of the host.
	MsgHistory = "history"

	writeWait = 5 * time.Second
)

// Message is what the host sends to mirrors.
type Message struct {
	Type    string          `json:"type"`
	History json.RawMessage `json:"history,omitempty"`
	Seq     uint64          `json:"seq"`
}

// Peer is a connected mirror.
type Peer struct {
	ID   string
	Conn *websocket.Conn
	mu   sync.Mutex
}

func (p *Peer) send(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.Conn.WriteMessage(websocket.TextMessage, data)
}

// Hub is used by the HOST to keep every mirror up to date with its history.
type Hub struct {
	peers    map[string]*Peer
	latest   []byte
	seq      uint64
	upgrader websocket.Upgrader
	mu       sync.RWMutex
}

// NewHub creates a hub with no history published yet.
func NewHub() *Hub {
	return &Hub{
		peers: make(map[string]*Peer),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Publish sends history to every mirror and keeps it for mirrors that
// connect later.
func (h *Hub) Publish(history string) error {
	if !json.Valid([]byte(history)) {
		return errors.New("history is not valid JSON")
	}
	h.mu.Lock()
	h.seq++
	data, err := json.Marshal(Message{Type: MsgHistory, History: json.RawMessage(history), Seq: h.seq})
	if err != nil {
		h.mu.Unlock()
		return err
	}
	h.latest = data
	peers := make([]*Peer, 0, len(h.peers))
	for _, p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.Unlock()

	for _, p := range peers {
		if err := p.send(data); err != nil {
			log.Printf("[NET] Error sending to %s: %v", p.ID, err)
		}
	}
	return nil
}

// Count returns the number of connected mirrors.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// add registers p and returns the snapshot it should be sent first.
func (h *Hub) add(p *Peer) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p.ID] = p
	log.Printf("[NET] Mirror %s connected from %s", p.ID, p.Conn.RemoteAddr())
	return h.latest
}

func (h *Hub) remove(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.peers, p.ID)
	log.Printf("[NET] Mirror %s disconnected", p.ID)
}

// ServeHTTP upgrades the request to a websocket and registers a mirror.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[NET] Upgrade failed: %v", err)
		return
	}
	p := &Peer{ID: uuid.NewString(), Conn: conn}
	defer conn.Close()

	// A Publish racing with this send may reach the mirror first; Mirror
	// drops the older snapshot by its sequence number.
	if latest := h.add(p); latest != nil {
		if err := p.send(latest); err != nil {
			log.Printf("[NET] Error sending snapshot to %s: %v", p.ID, err)
		}
	}
	defer h.remove(p)

	// Mirrors are read-only; reading only detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Serve runs the hub on port until ctx is done.
func (h *Hub) Serve(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		srv.Shutdown(shutdown)
	}()
	log.Printf("[NET] Host hub listening on port %d", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Mirror connects to a host hub at url and calls apply with every history
// the host publishes, until ctx is done or the connection drops.
func Mirror(ctx context.Context, url string, apply func(history string) error) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial host: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	var last uint64
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read from host: %w", err)
		}
		if msg.Type != MsgHistory {
			log.Printf("[NET] Ignoring '%s' message", msg.Type)
			continue
		}
		if msg.Seq != 0 && msg.Seq <= last {
			continue
		}
		last = msg.Seq
		if err := apply(string(msg.History)); err != nil {
			log.Printf("[NET] Could not apply history #%d: %v", msg.Seq, err)
		}
	}
}
