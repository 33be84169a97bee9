package handlers

import (
	"context"
	"net/http"

	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

type FornecedorService interface {
	Create(ctx context.Context, f *models.Fornecedor) (*models.Fornecedor, error)
	Get(ctx context.Context, id string) (*models.Fornecedor, error)
	List(ctx context.Context, f repository.FornecedorFiltro, page, limit int64) (models.Page[models.Fornecedor], error)
	Update(ctx context.Context, id string, p models.FornecedorPatch) (*models.Fornecedor, error)
	Replace(ctx context.Context, id string, f *models.Fornecedor) (*models.Fornecedor, error)
	Delete(ctx context.Context, id string) error
}

type FornecedorHandler struct {
	Svc FornecedorService
}

func (h *FornecedorHandler) Fornecedores(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		f := repository.FornecedorFiltro{CNPJ: q.Get("cnpj"), NomeFornecedor: q.Get("nome_fornecedor")}
		page, limite := utils.ParsePage(q)
		ctx, cancel := withTimeout(r)
		defer cancel()
		list, err := h.Svc.List(ctx, f, page, limite)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Fornecedores encontrados", list)

	case http.MethodPost:
		var dto FornecedorDTO
		if err := decode(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		ctx, cancel := withTimeout(r)
		defer cancel()
		out, err := h.Svc.Create(ctx, dto.toModel())
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusCreated, "Fornecedor cadastrado com sucesso", out)

	default:
		utils.MethodNotAllowed(w)
	}
}

func (h *FornecedorHandler) FornecedorByID(w http.ResponseWriter, r *http.Request) {
	parts := subpath(r.URL.Path, "/api/fornecedores/")
	if len(parts) != 1 {
		utils.NotFound(w)
		return
	}
	id := parts[0]

	ctx, cancel := withTimeout(r)
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		out, err := h.Svc.Get(ctx, id)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Fornecedor encontrado", out)

	case http.MethodPut:
		var dto FornecedorDTO
		if err := decode(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		out, err := h.Svc.Replace(ctx, id, dto.toModel())
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Fornecedor atualizado com sucesso", out)

	case http.MethodPatch:
		var dto FornecedorPatchDTO
		if err := decode(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		if dto.vazio() {
			utils.Fail(w, errs.BadRequest("", "Nenhum campo informado para atualização."))
			return
		}
		out, err := h.Svc.Update(ctx, id, dto.toPatch())
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Fornecedor atualizado com sucesso", out)

	case http.MethodDelete:
		if err := h.Svc.Delete(ctx, id); err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Fornecedor removido com sucesso", nil)

	default:
		utils.MethodNotAllowed(w)
	}
}
