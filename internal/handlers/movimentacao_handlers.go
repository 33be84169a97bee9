package handlers

import (
	"context"
	"net/http"

	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/middleware"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
	"github.com/Werneck0live/estoque-automotivo/internal/service"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

type MovimentacaoService interface {
	Create(ctx context.Context, m *models.Movimentacao) (*models.Movimentacao, error)
	Get(ctx context.Context, id string) (*models.Movimentacao, error)
	List(ctx context.Context, f repository.MovimentacaoFiltro, page, limit int64) (models.Page[models.Movimentacao], error)
	Update(ctx context.Context, id string, p models.MovimentacaoPatch) (*models.Movimentacao, error)
	Delete(ctx context.Context, id string) error
	BuscarPorTipo(ctx context.Context, tipo string, page, limit int64) (models.Page[models.Movimentacao], error)
	BuscarPorPeriodo(ctx context.Context, inicio, fim string, page, limit int64) (models.Page[models.Movimentacao], error)
	BuscarPorProduto(ctx context.Context, produto string, page, limit int64) (models.Page[models.Movimentacao], error)
	BuscarPorUsuario(ctx context.Context, usuario string, page, limit int64) (models.Page[models.Movimentacao], error)
}

type MovimentacaoHandler struct {
	Svc MovimentacaoService
}

func (h *MovimentacaoHandler) Movimentacoes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.filtrar(w, r)

	case http.MethodPost:
		var dto MovimentacaoDTO
		if err := decode(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		m := dto.toModel()
		if p, ok := middleware.PrincipalFrom(r.Context()); ok {
			m.UsuarioID = p.Usuario.ID
			m.NomeUsuario = p.Usuario.NomeUsuario
		}
		ctx, cancel := withTimeout(r)
		defer cancel()
		criada, err := h.Svc.Create(ctx, m)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusCreated, "Movimentação registrada com sucesso", criada)

	default:
		utils.MethodNotAllowed(w)
	}
}

// MovimentacaoByID atende /api/movimentacoes/{id}, /busca e /filtro.
func (h *MovimentacaoHandler) MovimentacaoByID(w http.ResponseWriter, r *http.Request) {
	parts := subpath(r.URL.Path, "/api/movimentacoes/")
	if len(parts) != 1 {
		utils.NotFound(w)
		return
	}
	switch parts[0] {
	case "busca":
		if r.Method != http.MethodGet {
			utils.MethodNotAllowed(w)
			return
		}
		h.buscar(w, r)
		return
	case "filtro":
		if r.Method != http.MethodGet {
			utils.MethodNotAllowed(w)
			return
		}
		h.filtrar(w, r)
		return
	}
	id := parts[0]

	ctx, cancel := withTimeout(r)
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		m, err := h.Svc.Get(ctx, id)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Movimentação encontrada", m)

	case http.MethodPatch:
		var dto MovimentacaoPatchDTO
		if err := decode(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		if dto.vazio() {
			utils.Fail(w, errs.BadRequest("", "Nenhum campo informado para atualização."))
			return
		}
		m, err := h.Svc.Update(ctx, id, dto.toPatch())
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Movimentação atualizada com sucesso", m)

	case http.MethodDelete:
		if err := h.Svc.Delete(ctx, id); err != nil {
			utils.Fail(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "Movimentação removida com sucesso", nil)

	default:
		utils.MethodNotAllowed(w)
	}
}

// buscar usa o primeiro critério informado: tipo, período, produto ou usuário.
func (h *MovimentacaoHandler) buscar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limite := utils.ParsePage(q)
	ctx, cancel := withTimeout(r)
	defer cancel()

	var (
		list models.Page[models.Movimentacao]
		err  error
	)
	switch {
	case q.Get("tipo") != "":
		list, err = h.Svc.BuscarPorTipo(ctx, q.Get("tipo"), page, limite)
	case q.Get("data_inicio") != "" || q.Get("data_fim") != "":
		list, err = h.Svc.BuscarPorPeriodo(ctx, q.Get("data_inicio"), q.Get("data_fim"), page, limite)
	case q.Get("produto") != "":
		list, err = h.Svc.BuscarPorProduto(ctx, q.Get("produto"), page, limite)
	case q.Get("usuario") != "":
		list, err = h.Svc.BuscarPorUsuario(ctx, q.Get("usuario"), page, limite)
	default:
		err = errs.BadRequest("", "Informe um critério de busca: tipo, data_inicio e data_fim, produto ou usuario.")
	}
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Movimentações encontradas", list)
}

func (h *MovimentacaoHandler) filtrar(w http.ResponseWriter, r *http.Request) {
	f, err := movimentacaoFiltro(r)
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
	utils.Success(w, http.StatusOK, "Movimentações encontradas", list)
}

func movimentacaoFiltro(r *http.Request) (repository.MovimentacaoFiltro, error) {
	q := r.URL.Query()
	f := repository.MovimentacaoFiltro{
		Tipo:    q.Get("tipo"),
		Produto: q.Get("produto"),
		Usuario: q.Get("usuario"),
	}
	if s := q.Get("data_inicio"); s != "" {
		t, err := service.ParseData(s, false)
		if err != nil {
			return f, errs.BadRequest("data_inicio", "Data inicial inválida.")
		}
		f.DataInicio = &t
	}
	if s := q.Get("data_fim"); s != "" {
		t, err := service.ParseData(s, true)
		if err != nil {
			return f, errs.BadRequest("data_fim", "Data final inválida.")
		}
		f.DataFim = &t
	}
	return f, nil
}
