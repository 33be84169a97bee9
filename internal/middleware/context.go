// Package middleware reúne os wrappers http.Handler da API: request id,
// log de acesso, autenticação bearer, permissão por rota e auditoria.
package middleware

import (
	"context"

	"github.com/Werneck0live/estoque-automotivo/internal/auth"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
)

type ctxKey int

const (
	principalKey ctxKey = iota
	requestIDKey
)

// Principal é o usuário autenticado da requisição.
type Principal struct {
	Usuario *models.Usuario
	Claims  *auth.Claims
}

func (p *Principal) SessaoID() string {
	if p == nil || p.Claims == nil {
		return ""
	}
	return p.Claims.SessaoID
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
