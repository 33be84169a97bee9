package ws

import (
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d; want %d", h.Clients(), n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHandler_EntregaEventosAssinados(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	srv := httptest.NewServer(Handler(h, slog.Default()))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?tipos=estoque.baixo"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read boas-vindas: %v", err)
	}
	var ack Conectado
	if err := json.Unmarshal(msg, &ack); err != nil {
		t.Fatalf("decode %s: %v", msg, err)
	}
	if ack.Tipo != TipoConectado || ack.ClienteID == "" || len(ack.Tipos) != 1 || ack.Tipos[0] != "estoque.baixo" {
		t.Fatalf("boas-vindas = %+v", ack)
	}

	h.Broadcast("produto.criado", []byte(`{"tipo":"produto.criado"}`))
	h.Broadcast("estoque.baixo", []byte(`{"tipo":"estoque.baixo"}`))

	_, msg, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != `{"tipo":"estoque.baixo"}` {
		t.Fatalf("msg = %s; want estoque.baixo", msg)
	}
}

func TestHandler_DesregistraAoFechar(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	srv := httptest.NewServer(Handler(h, slog.Default()))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	waitClients(t, h, 1)

	_ = conn.Close()
	waitClients(t, h, 0)
}

func TestHandler_SemUpgrade(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	rr := httptest.NewRecorder()
	Handler(h, slog.Default())(rr, httptest.NewRequest("GET", "/ws", nil))
	if rr.Code != 400 {
		t.Fatalf("status = %d; want 400", rr.Code)
	}
	if h.Clients() != 0 {
		t.Fatalf("clients = %d; want 0", h.Clients())
	}
}
