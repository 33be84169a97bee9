package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

type PermissionChecker interface {
	HasPermission(ctx context.Context, u *models.Usuario, rota, metodo string) (bool, error)
}

// Permission exige permissão do usuário na rota para o método da requisição.
// Administradores não passam pela checagem de grupos.
func Permission(checker PermissionChecker, rota string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				utils.Fail(w, errs.Unauthorized("", "Usuário não autenticado"))
				return
			}
			if p.Usuario.Administrador() {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()
			allowed, err := checker.HasPermission(ctx, p.Usuario, rota, r.Method)
			if err != nil {
				utils.Fail(w, err)
				return
			}
			if !allowed {
				log.Warn("permission_denied", "matricula", p.Usuario.Matricula, "rota", rota, "method", r.Method)
				utils.Fail(w, errs.Forbidden("permissao",
					fmt.Sprintf("Você não tem permissão para realizar a ação '%s' na rota '%s'", r.Method, rota)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly restringe o handler ao perfil administrador.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			utils.Fail(w, errs.Unauthorized("", "Usuário não autenticado"))
			return
		}
		if !p.Usuario.Administrador() {
			utils.Fail(w, errs.Forbidden("perfil", "Acesso negado. Perfil sem permissões suficientes"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
