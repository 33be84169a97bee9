package handlers

import (
	"context"
	"net/http"

	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

type GrupoService interface {
	Create(ctx context.Context, g *models.Grupo) (*models.Grupo, error)
	Get(ctx context.Context, id string) (*models.Grupo, error)
	List(ctx context.Context, f repository.GrupoFiltro, page, limit int64) (models.Page[models.Grupo], error)
	Update(ctx context.Context, id string, p models.GrupoPatch) (*models.Grupo, error)
	Delete(ctx context.Context, id string) error
	SetAtivo(ctx context.Context, id string, ativo bool) (*models.Grupo, error)
	AddPermissao(ctx context.Context, id string, p models.Permissao) (*models.Grupo, error)
	RemovePermissao(ctx context.Context, id, rota, dominio string) (*models.Grupo, error)
}

type GrupoHandler struct {
	Svc GrupoService
}

func (h *GrupoHandler) Grupos(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ativo, err := queryBool(r, "ativo")
		if err != nil {
			utils.Fail(w, err)
			return
		}
		q := r.URL.Query()
		page, limite := utils.ParsePage(q)
		ctx, cancel := withTimeout(r)
		defer cancel()
		list, err := h.Svc.List(ctx, repository.GrupoFiltro{Nome: q.Get("nome"), Ativo: ativo}, page, limite)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Grupos encontrados", list)

	case http.MethodPost:
		var dto GrupoDTO
		if err := decode(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		ctx, cancel := withTimeout(r)
		defer cancel()
		g, err := h.Svc.Create(ctx, dto.toModel())
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusCreated, "Grupo criado com sucesso", g)

	default:
		utils.MethodNotAllowed(w)
	}
}

// GrupoByID atende /api/grupos/{id}, /{id}/ativar, /{id}/desativar e /{id}/permissoes.
func (h *GrupoHandler) GrupoByID(w http.ResponseWriter, r *http.Request) {
	parts := subpath(r.URL.Path, "/api/grupos/")
	if len(parts) == 0 || len(parts) > 2 {
		utils.NotFound(w)
		return
	}
	id := parts[0]
	ctx, cancel := withTimeout(r)
	defer cancel()

	if len(parts) == 2 {
		switch parts[1] {
		case "ativar", "desativar":
			if r.Method != http.MethodPatch {
				utils.MethodNotAllowed(w)
				return
			}
			ativo := parts[1] == "ativar"
			g, err := h.Svc.SetAtivo(ctx, id, ativo)
			if err != nil {
				utils.Fail(w, err)
				return
			}
			msg := "Grupo desativado com sucesso"
			if ativo {
				msg = "Grupo ativado com sucesso"
			}
			utils.Success(w, http.StatusOK, msg, g)
		case "permissoes":
			h.permissoes(ctx, w, r, id)
		default:
			utils.NotFound(w)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		g, err := h.Svc.Get(ctx, id)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Grupo encontrado", g)

	case http.MethodPatch:
		var dto GrupoPatchDTO
		if err := decode(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		if dto.vazio() {
			utils.Fail(w, errs.BadRequest("", "Nenhum campo informado para atualização."))
			return
		}
		g, err := h.Svc.Update(ctx, id, dto.toPatch())
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Grupo atualizado com sucesso", g)

	case http.MethodDelete:
		if err := h.Svc.Delete(ctx, id); err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Grupo removido com sucesso", nil)

	default:
		utils.MethodNotAllowed(w)
	}
}

func (h *GrupoHandler) permissoes(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodPost:
		var dto PermissaoDTO
		if err := decode(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		g, err := h.Svc.AddPermissao(ctx, id, dto.toModel())
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Permissão adicionada com sucesso", g)

	case http.MethodDelete:
		var dto RemoverPermissaoDTO
		if err := decode(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		g, err := h.Svc.RemovePermissao(ctx, id, dto.Rota, dto.Dominio)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Permissão removida com sucesso", g)

	default:
		utils.MethodNotAllowed(w)
	}
}
