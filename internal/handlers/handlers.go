// Package handlers expõe os services na API REST. Cada recurso tem um handler
// de coleção (/api/x) e um de item (/api/x/...), que despacham por método.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

const requestTimeout = 5 * time.Second

func withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

// subpath devolve os segmentos depois do prefixo: "/api/grupos/1/ativar" com
// prefixo "/api/grupos/" vira ["1", "ativar"].
func subpath(path, prefix string) []string {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

// decode lê o corpo (rejeitando campos desconhecidos) e valida as tags do DTO.
func decode(r *http.Request, dst any) error {
	if err := utils.DecodeBody(r, dst); err != nil {
		return err
	}
	return validar(dst)
}

func queryFloat(r *http.Request, key string) (*float64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errs.BadRequest(key, key+" deve ser numérico")
	}
	return &v, nil
}

func queryInt(r *http.Request, key string) (*int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, errs.BadRequest(key, key+" deve ser um número inteiro")
	}
	return &v, nil
}

func queryBool(r *http.Request, key string) (*bool, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, errs.BadRequest(key, key+" deve ser true ou false")
	}
	return &v, nil
}

type HealthHandler struct {
	Ping func(ctx context.Context) error
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if h.Ping != nil {
		if err := h.Ping(ctx); err != nil {
			utils.Fail(w, errs.New(http.StatusServiceUnavailable, errs.TipoInterno, "mongo", "Banco de dados indisponível"))
			return
		}
	}
	utils.Success(w, http.StatusOK, "ok", map[string]string{"status": "ok"})
}

// NotFound responde às rotas não mapeadas.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	utils.NotFound(w)
}
