package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/auth"
	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

type TokenParser interface {
	ParseAccess(token string) (*auth.Claims, error)
}

type UsuarioGetter interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Usuario, error)
}

// BearerToken extrai o token do cabeçalho Authorization.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return "", false
	}
	t := strings.TrimSpace(h[7:])
	return t, t != ""
}

// Auth valida o token de acesso, confere se ainda é o vigente do usuário
// (logout e revogação invalidam) e coloca o Principal no contexto.
func Auth(tokens TokenParser, usuarios UsuarioGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				utils.Fail(w, errs.Unauthorized("Authorization", "Token de autenticação não fornecido"))
				return
			}
			claims, err := tokens.ParseAccess(token)
			if err != nil {
				utils.Fail(w, errs.Unauthorized("token", "Token de autenticação inválido ou expirado"))
				return
			}
			oid, err := primitive.ObjectIDFromHex(claims.UsuarioID)
			if err != nil {
				utils.Fail(w, errs.Unauthorized("token", "Token de autenticação inválido ou expirado"))
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()
			u, err := usuarios.GetByID(ctx, oid)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					utils.Fail(w, errs.Unauthorized("token", "Usuário do token não existe mais"))
					return
				}
				utils.Fail(w, err)
				return
			}
			if !u.Ativo {
				utils.Fail(w, errs.Unauthorized("usuario", "Este usuário está desativado. Contate o administrador."))
				return
			}
			if u.AccessToken != token {
				utils.Fail(w, errs.Unauthorized("token", "Sessão encerrada. Realize login novamente."))
				return
			}

			p := &Principal{Usuario: u, Claims: claims}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}
