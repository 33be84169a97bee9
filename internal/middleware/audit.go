package middleware

import (
	"context"
	"net/http"

	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

type EventRecorder interface {
	Registrar(ctx context.Context, sessaoID string, e models.Evento)
}

// Audit registra na sessão do usuário as escritas bem-sucedidas (status < 400).
// Leituras não geram evento.
func Audit(rec EventRecorder, tipo string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			srw := &statusRW{ResponseWriter: w}
			next.ServeHTTP(srw, r)

			p, ok := PrincipalFrom(r.Context())
			if !ok || srw.code() >= http.StatusBadRequest {
				return
			}
			dados := map[string]any{"query": r.URL.RawQuery}
			if id := RequestIDFrom(r.Context()); id != "" {
				dados["request_id"] = id
			}
			rec.Registrar(context.WithoutCancel(r.Context()), p.SessaoID(), models.Evento{
				Tipo:   tipo,
				Metodo: r.Method,
				Rota:   r.URL.Path,
				IP:     utils.ClientIP(r),
				Status: srw.code(),
				Dados:  dados,
			})
		})
	}
}

// Chain aplica os middlewares na ordem em que aparecem (o primeiro é o mais externo).
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
