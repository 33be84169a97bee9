package ws

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
)

type Client struct {
	ID   string
	Send chan []byte

	// Tipos assinados; vazio recebe tudo.
	Tipos map[string]struct{}
}

// NewClient cria o cliente a partir da lista "a,b,c" vinda de ?tipos=.
func NewClient(tipos string, buf int) *Client {
	c := &Client{Send: make(chan []byte, buf), Tipos: map[string]struct{}{}}
	for _, t := range strings.Split(tipos, ",") {
		if t = strings.TrimSpace(t); t != "" {
			c.Tipos[t] = struct{}{}
		}
	}
	return c
}

func (c *Client) Quer(tipo string) bool {
	if len(c.Tipos) == 0 {
		return true
	}
	_, ok := c.Tipos[tipo]
	return ok
}

type broadcastMsg struct {
	tipo string
	msg  []byte
}

type unicastMsg struct {
	id  string
	msg []byte
}

type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client // id -> client
	register chan *Client
	unreg    chan *Client

	sendAll chan broadcastMsg // envio para os assinantes do tipo
	unicast chan unicastMsg   // envio para 1 cliente

	log     *slog.Logger
	stop    chan struct{}
	stopped chan struct{}

	nextID atomic.Uint64
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:  make(map[string]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		sendAll:  make(chan broadcastMsg, 1024),
		unicast:  make(chan unicastMsg, 1024),
		log:      log.With("cmp", "ws.hub"),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (h *Hub) newID() string {
	id := h.nextID.Add(1)
	return fmt.Sprintf("c%d", id)
}

// drop remove o cliente e fecha o canal; precisa do lock de escrita.
func (h *Hub) drop(id string) {
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.Send)
	}
}

func (h *Hub) Run() {
	h.log.Info("hub_run_start")
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("client_registered", "id", c.ID, "tipos", len(c.Tipos), "total", total)

		case c := <-h.unreg:
			if c == nil || c.ID == "" {
				continue
			}
			h.mu.Lock()
			h.drop(c.ID)
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("client_unregistered", "id", c.ID, "total", total)

		case b := <-h.sendAll:
			var slow []string
			h.mu.RLock()
			for id, c := range h.clients {
				if !c.Quer(b.tipo) {
					continue
				}
				select {
				case c.Send <- b.msg:
				default:
					// cliente lento -> dropa para não travar o hub
					slow = append(slow, id)
				}
			}
			h.mu.RUnlock()
			if len(slow) > 0 {
				h.mu.Lock()
				for _, id := range slow {
					h.drop(id)
				}
				h.mu.Unlock()
				h.log.Warn("broadcast_drop_slow", "clients", slow)
			}

		case u := <-h.unicast:
			h.mu.RLock()
			c := h.clients[u.id]
			h.mu.RUnlock()
			if c == nil {
				h.log.Warn("send_one_miss", "id", u.id)
				continue
			}
			select {
			case c.Send <- u.msg:
			default:
				h.mu.Lock()
				h.drop(u.id)
				h.mu.Unlock()
				h.log.Warn("send_one_drop_slow", "id", u.id)
			}

		case <-h.stop:
			h.mu.Lock()
			for id := range h.clients {
				h.drop(id)
			}
			h.mu.Unlock()
			h.log.Info("hub_run_stop")
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

// Register atribui o ID (se vazio) antes de entregar o cliente ao Run.
func (h *Hub) Register(c *Client) {
	if c.ID == "" {
		c.ID = h.newID()
	}
	h.register <- c
}

func (h *Hub) Unregister(c *Client) { h.unreg <- c }

// Broadcast envia para todos os clientes que assinam o tipo.
func (h *Hub) Broadcast(tipo string, b []byte)  { h.sendAll <- broadcastMsg{tipo: tipo, msg: b} }
func (h *Hub) SendToClient(id string, b []byte) { h.unicast <- unicastMsg{id: id, msg: b} }

// Clients devolve quantos clientes estão conectados.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
