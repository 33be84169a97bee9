package handlers

import (
	"context"
	"net/http"

	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/middleware"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

type AuditService interface {
	LogsDoUsuario(ctx context.Context, solicitante *models.Usuario, usuarioID string, limite int64) ([]models.Sessao, error)
	Buscar(ctx context.Context, tipo, inicio, fim string) ([]models.EventoUsuario, error)
	Estatisticas(ctx context.Context) (models.Estatisticas, error)
	Criticos(ctx context.Context, dias int) ([]models.EventoUsuario, error)
	UsuariosOnline(ctx context.Context) ([]models.Sessao, error)
}

// LogHandler expõe /api/logs. Só DoUsuario fica fora do AdminOnly: o
// service decide se o solicitante pode ver aqueles logs.
type LogHandler struct {
	Svc AuditService
}

func (h *LogHandler) OnlineUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.MethodNotAllowed(w)
		return
	}
	ctx, cancel := withTimeout(r)
	defer cancel()
	sessoes, err := h.Svc.UsuariosOnline(ctx)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Usuários online", sessoes)
}

// DoUsuario atende /api/logs/usuario/{userId}?limite=.
func (h *LogHandler) DoUsuario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.MethodNotAllowed(w)
		return
	}
	parts := subpath(r.URL.Path, "/api/logs/usuario/")
	if len(parts) != 1 {
		utils.NotFound(w)
		return
	}
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.Fail(w, errs.Unauthorized("", "Token de autenticação não fornecido"))
		return
	}
	limite, err := queryInt(r, "limite")
	if err != nil {
		utils.Fail(w, err)
		return
	}
	var n int64
	if limite != nil {
		n = int64(*limite)
	}
	ctx, cancel := withTimeout(r)
	defer cancel()
	sessoes, err := h.Svc.LogsDoUsuario(ctx, p.Usuario, parts[0], n)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Logs do usuário", sessoes)
}

// Search atende /api/logs/search?eventType=&startDate=&endDate=.
func (h *LogHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.MethodNotAllowed(w)
		return
	}
	q := r.URL.Query()
	ctx, cancel := withTimeout(r)
	defer cancel()
	eventos, err := h.Svc.Buscar(ctx, q.Get("eventType"), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Eventos encontrados", eventos)
}

func (h *LogHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.MethodNotAllowed(w)
		return
	}
	ctx, cancel := withTimeout(r)
	defer cancel()
	st, err := h.Svc.Estatisticas(ctx)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Estatísticas de uso", st)
}

// Critical atende /api/logs/critical?dias=.
func (h *LogHandler) Critical(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.MethodNotAllowed(w)
		return
	}
	dias, err := queryInt(r, "dias")
	if err != nil {
		utils.Fail(w, err)
		return
	}
	n := 0
	if dias != nil {
		n = *dias
	}
	ctx, cancel := withTimeout(r)
	defer cancel()
	eventos, err := h.Svc.Criticos(ctx, n)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Eventos críticos", eventos)
}
