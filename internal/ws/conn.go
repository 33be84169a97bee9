package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// painel roda em outra origem
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler faz o upgrade e registra o cliente no hub com os tipos de ?tipos=.
func Handler(h *Hub, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("ws_upgrade_error", "err", err)
			return
		}

		c := NewClient(r.URL.Query().Get("tipos"), sendBuffer)
		h.Register(c)
		log.Info("ws_client_connected", "id", c.ID, "remote", r.RemoteAddr, "tipos", len(c.Tipos))
		h.SendToClient(c.ID, boasVindas(c))

		go writePump(conn, c)
		go readPump(conn, h, c)
	}
}

// Conectado é a primeira mensagem do socket: confirma o ID e a assinatura.
type Conectado struct {
	Tipo      string   `json:"tipo"`
	ClienteID string   `json:"cliente_id"`
	Tipos     []string `json:"tipos"`
}

const TipoConectado = "ws.conectado"

func boasVindas(c *Client) []byte {
	tipos := make([]string, 0, len(c.Tipos))
	for t := range c.Tipos {
		tipos = append(tipos, t)
	}
	slices.Sort(tipos)
	b, _ := json.Marshal(Conectado{Tipo: TipoConectado, ClienteID: c.ID, Tipos: tipos})
	return b
}

// writePump envia ao socket o que o hub entrega e mantém o ping.
func writePump(conn *websocket.Conn, c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// hub fechou o canal
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump só detecta o fechamento; mensagens do cliente são descartadas.
func readPump(conn *websocket.Conn, h *Hub, c *Client) {
	defer func() {
		h.Unregister(c)
		_ = conn.Close()
	}()
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
