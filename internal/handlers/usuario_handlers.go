package handlers

import (
	"context"
	"net/http"

	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
	"github.com/Werneck0live/estoque-automotivo/internal/service"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

type UsuarioService interface {
	Create(ctx context.Context, u *models.Usuario, senha string) (*models.Usuario, error)
	List(ctx context.Context, f repository.UsuarioFiltro, page, limit int64) (models.Page[models.Usuario], error)
	Buscar(ctx context.Context, nome string, page, limit int64) (models.Page[models.Usuario], error)
	Get(ctx context.Context, matricula string) (*models.Usuario, error)
	Update(ctx context.Context, matricula string, p models.UsuarioPatch, senha *string) (*models.Usuario, error)
	Delete(ctx context.Context, matricula string) error
}

type PermissoesConsulta interface {
	DoUsuario(ctx context.Context, u *models.Usuario) (service.PermissoesUsuario, error)
}

type UsuarioHandler struct {
	Svc   UsuarioService
	Perms PermissoesConsulta
}

func (h *UsuarioHandler) Usuarios(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		ativo, err := queryBool(r, "ativo")
		if err != nil {
			utils.Fail(w, err)
			return
		}
		f := repository.UsuarioFiltro{NomeUsuario: q.Get("nome_usuario"), Perfil: q.Get("perfil"), Ativo: ativo}
		page, limite := utils.ParsePage(q)
		ctx, cancel := withTimeout(r)
		defer cancel()
		list, err := h.Svc.List(ctx, f, page, limite)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Usuários encontrados", list)

	case http.MethodPost:
		var dto UsuarioDTO
		if err := decode(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		ctx, cancel := withTimeout(r)
		defer cancel()
		u, err := h.Svc.Create(ctx, dto.toModel(), dto.Senha)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusCreated, "Usuário cadastrado com sucesso", u)

	default:
		utils.MethodNotAllowed(w)
	}
}

// UsuarioByMatricula atende /api/usuarios/busca, /api/usuarios/{matricula}
// e /api/usuarios/{matricula}/permissoes.
func (h *UsuarioHandler) UsuarioByMatricula(w http.ResponseWriter, r *http.Request) {
	parts := subpath(r.URL.Path, "/api/usuarios/")
	ctx, cancel := withTimeout(r)
	defer cancel()

	switch {
	case len(parts) == 1 && parts[0] == "busca":
		if r.Method != http.MethodGet {
			utils.MethodNotAllowed(w)
			return
		}
		q := r.URL.Query()
		page, limite := utils.ParsePage(q)
		list, err := h.Svc.Buscar(ctx, q.Get("nome"), page, limite)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Usuários encontrados", list)

	case len(parts) == 2 && parts[1] == "permissoes":
		if r.Method != http.MethodGet {
			utils.MethodNotAllowed(w)
			return
		}
		u, err := h.Svc.Get(ctx, parts[0])
		if err != nil {
			utils.Fail(w, err)
			return
		}
		perms, err := h.Perms.DoUsuario(ctx, u)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Permissões do usuário", perms)

	case len(parts) == 1:
		h.porMatricula(ctx, w, r, parts[0])

	default:
		utils.NotFound(w)
	}
}

func (h *UsuarioHandler) porMatricula(ctx context.Context, w http.ResponseWriter, r *http.Request, matricula string) {
	switch r.Method {
	case http.MethodGet:
		u, err := h.Svc.Get(ctx, matricula)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Usuário encontrado", u)

	case http.MethodPatch:
		var dto UsuarioPatchDTO
		if err := decode(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		if dto.vazio() {
			utils.Fail(w, errs.BadRequest("", "Nenhum campo informado para atualização."))
			return
		}
		u, err := h.Svc.Update(ctx, matricula, dto.toPatch(), dto.Senha)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Usuário atualizado com sucesso", u)

	case http.MethodDelete:
		if err := h.Svc.Delete(ctx, matricula); err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Usuário removido com sucesso", nil)

	default:
		utils.MethodNotAllowed(w)
	}
}
