package handlers

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

type ProdutoService interface {
	Create(ctx context.Context, p *models.Produto) (*models.Produto, error)
	Get(ctx context.Context, id string) (*models.Produto, error)
	List(ctx context.Context, f repository.ProdutoFiltro, page, limit int64) (models.Page[models.Produto], error)
	EstoqueBaixo(ctx context.Context, page, limit int64) (models.Page[models.Produto], error)
	Update(ctx context.Context, id string, p models.ProdutoPatch) (*models.Produto, error)
	Replace(ctx context.Context, id string, p *models.Produto) (*models.Produto, error)
	Delete(ctx context.Context, id string) error
}

type ProdutoHandler struct {
	Svc ProdutoService
}

// Produtos atende /api/produtos.
func (h *ProdutoHandler) Produtos(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		f, err := produtoFiltro(r)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		page, limite := utils.ParsePage(r.URL.Query())
		ctx, cancel := withTimeout(r)
		defer cancel()
		list, err := h.Svc.List(ctx, f, page, limite)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Produtos encontrados", list)

	case http.MethodPost:
		var dto ProdutoDTO
		if err := decode(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		ctx, cancel := withTimeout(r)
		defer cancel()
		p, err := h.Svc.Create(ctx, dto.toModel())
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusCreated, "Produto cadastrado com sucesso", p)

	default:
		utils.MethodNotAllowed(w)
	}
}

// ProdutoByID atende /api/produtos/{id} e /api/produtos/estoque-baixo.
func (h *ProdutoHandler) ProdutoByID(w http.ResponseWriter, r *http.Request) {
	parts := subpath(r.URL.Path, "/api/produtos/")
	if len(parts) != 1 {
		utils.NotFound(w)
		return
	}
	if parts[0] == "estoque-baixo" {
		h.estoqueBaixo(w, r)
		return
	}
	id := parts[0]

	ctx, cancel := withTimeout(r)
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		p, err := h.Svc.Get(ctx, id)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Produto encontrado", p)

	case http.MethodPut:
		var dto ProdutoDTO
		if err := decode(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		p, err := h.Svc.Replace(ctx, id, dto.toModel())
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Produto atualizado com sucesso", p)

	case http.MethodPatch:
		var dto ProdutoPatchDTO
		if err := decode(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		if dto.vazio() {
			utils.Fail(w, errs.BadRequest("", "Nenhum campo informado para atualização."))
			return
		}
		p, err := h.Svc.Update(ctx, id, dto.toPatch())
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Produto atualizado com sucesso", p)

	case http.MethodDelete:
		if err := h.Svc.Delete(ctx, id); err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Produto removido com sucesso", nil)

	default:
		utils.MethodNotAllowed(w)
	}
}

func (h *ProdutoHandler) estoqueBaixo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.MethodNotAllowed(w)
		return
	}
	page, limite := utils.ParsePage(r.URL.Query())
	ctx, cancel := withTimeout(r)
	defer cancel()
	list, err := h.Svc.EstoqueBaixo(ctx, page, limite)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Produtos com estoque baixo", list)
}

func produtoFiltro(r *http.Request) (repository.ProdutoFiltro, error) {
	q := r.URL.Query()
	f := repository.ProdutoFiltro{
		Nome:          q.Get("nome_produto"),
		Categoria:     q.Get("categoria"),
		CodigoProduto: q.Get("codigo_produto"),
	}
	if f.Nome == "" {
		f.Nome = q.Get("nome")
	}
	var err error
	if f.PrecoMin, err = queryFloat(r, "preco_min"); err != nil {
		return f, err
	}
	if f.PrecoMax, err = queryFloat(r, "preco_max"); err != nil {
		return f, err
	}
	if f.EstoqueMin, err = queryInt(r, "estoque_min"); err != nil {
		return f, err
	}
	if f.Status, err = queryBool(r, "status"); err != nil {
		return f, err
	}
	if s := q.Get("id_fornecedor"); s != "" {
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return f, errs.BadRequest("id_fornecedor", "ID do fornecedor inválido.")
		}
		f.FornecedorID = &oid
	}
	return f, nil
}
