package handlers

import (
	"context"
	"net/http"

	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/middleware"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/service"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

type AuthService interface {
	Login(ctx context.Context, matricula, senha string, sis models.InfoSistema) (*service.LoginResult, error)
	Logout(ctx context.Context, token string) error
	Refresh(ctx context.Context, refreshToken string) (*service.LoginResult, error)
	Revoke(ctx context.Context, matricula string) error
	Introspect(ctx context.Context, token string) (service.Introspeccao, error)
	Signup(ctx context.Context, u *models.Usuario, senha string) (*models.Usuario, error)
	Recover(ctx context.Context, email string) error
	ResetByToken(ctx context.Context, token, senha string) error
	ResetByCode(ctx context.Context, email, codigo, senha string) error
}

type AuthHandler struct {
	Svc   AuthService
	Audit middleware.EventRecorder
}

func infoSistema(r *http.Request) models.InfoSistema {
	ua := r.UserAgent()
	return models.InfoSistema{
		IP:                 utils.ClientIP(r),
		SistemaOperacional: utils.SistemaOperacional(ua),
		Navegador:          utils.Navegador(ua),
		UserAgent:          ua,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.MethodNotAllowed(w)
		return
	}
	var dto LoginDTO
	if err := decode(r, &dto); err != nil {
		utils.Fail(w, err)
		return
	}
	ctx, cancel := withTimeout(r)
	defer cancel()
	res, err := h.Svc.Login(ctx, dto.Matricula, dto.Senha, infoSistema(r))
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Login realizado com sucesso", res)
}

// Logout aceita o token no cabeçalho Authorization ou no corpo.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.MethodNotAllowed(w)
		return
	}
	token, ok := middleware.BearerToken(r)
	if !ok {
		var dto TokenDTO
		if err := utils.DecodeBody(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		token = dto.Token
	}
	if token == "" {
		utils.Fail(w, errs.BadRequest("token", "Token não informado."))
		return
	}
	ctx, cancel := withTimeout(r)
	defer cancel()
	if err := h.Svc.Logout(ctx, token); err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Logout realizado com sucesso", nil)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.MethodNotAllowed(w)
		return
	}
	var dto TokenDTO
	if err := utils.DecodeBody(r, &dto); err != nil {
		utils.Fail(w, err)
		return
	}
	token := dto.RefreshToken
	if token == "" {
		token = dto.Token
	}
	if token == "" {
		utils.Fail(w, errs.BadRequest("refresh_token", "Refresh token não informado."))
		return
	}
	ctx, cancel := withTimeout(r)
	defer cancel()
	res, err := h.Svc.Refresh(ctx, token)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Token atualizado com sucesso", res)
}

// Revoke exige administrador autenticado; o evento fica na sessão de quem revogou.
func (h *AuthHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.MethodNotAllowed(w)
		return
	}
	var dto RevokeDTO
	if err := decode(r, &dto); err != nil {
		utils.Fail(w, err)
		return
	}
	ctx, cancel := withTimeout(r)
	defer cancel()
	if err := h.Svc.Revoke(ctx, dto.Matricula); err != nil {
		utils.Fail(w, err)
		return
	}
	if p, ok := middleware.PrincipalFrom(r.Context()); ok && h.Audit != nil {
		h.Audit.Registrar(context.WithoutCancel(ctx), p.SessaoID(), models.Evento{
			Tipo:   models.EventoTokenRevoke,
			Metodo: r.Method,
			Rota:   r.URL.Path,
			IP:     utils.ClientIP(r),
			Status: http.StatusOK,
			Dados:  map[string]any{"matricula": dto.Matricula},
		})
	}
	utils.Success(w, http.StatusOK, "Token revogado com sucesso", nil)
}

func (h *AuthHandler) Introspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.MethodNotAllowed(w)
		return
	}
	token, ok := middleware.BearerToken(r)
	if !ok {
		var dto TokenDTO
		if err := utils.DecodeBody(r, &dto); err != nil {
			utils.Fail(w, err)
			return
		}
		token = dto.Token
	}
	if token == "" {
		utils.Fail(w, errs.BadRequest("token", "Token não informado."))
		return
	}
	ctx, cancel := withTimeout(r)
	defer cancel()
	res, err := h.Svc.Introspect(ctx, token)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Token verificado", res)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.MethodNotAllowed(w)
		return
	}
	var dto SignupDTO
	if err := decode(r, &dto); err != nil {
		utils.Fail(w, err)
		return
	}
	ctx, cancel := withTimeout(r)
	defer cancel()
	u, err := h.Svc.Signup(ctx, dto.toModel(), dto.Senha)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Usuário cadastrado com sucesso", u)
}

func (h *AuthHandler) Recover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.MethodNotAllowed(w)
		return
	}
	var dto RecoverDTO
	if err := decode(r, &dto); err != nil {
		utils.Fail(w, err)
		return
	}
	ctx, cancel := withTimeout(r)
	defer cancel()
	if err := h.Svc.Recover(ctx, dto.Email); err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Se o e-mail estiver cadastrado, você receberá as instruções de recuperação.", nil)
}

// ResetByToken atende PATCH /auth/password/reset/token?token=.
func (h *AuthHandler) ResetByToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.MethodNotAllowed(w)
		return
	}
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.Fail(w, errs.BadRequest("token", "Token de recuperação não informado."))
		return
	}
	var dto ResetTokenDTO
	if err := decode(r, &dto); err != nil {
		utils.Fail(w, err)
		return
	}
	ctx, cancel := withTimeout(r)
	defer cancel()
	if err := h.Svc.ResetByToken(ctx, token, dto.Senha); err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Senha redefinida com sucesso", nil)
}

func (h *AuthHandler) ResetByCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.MethodNotAllowed(w)
		return
	}
	var dto ResetCodeDTO
	if err := decode(r, &dto); err != nil {
		utils.Fail(w, err)
		return
	}
	ctx, cancel := withTimeout(r)
	defer cancel()
	if err := h.Svc.ResetByCode(ctx, dto.Email, dto.Codigo, dto.Senha); err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Senha redefinida com sucesso", nil)
}
