package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/auth"
	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/mail"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
)

type AuthService struct {
	Usuarios    UsuarioStore
	Cadastro    *UsuarioService
	Tokens      *auth.TokenManager
	Audit       *AuditService
	Mailer      mail.Mailer
	RecoveryTTL time.Duration
	ResetURL    string // link base enviado no e-mail de recuperação

	Now func() time.Time
	Log *slog.Logger
}

type LoginResult struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	Usuario      *models.Usuario `json:"user,omitempty"`
}

type Introspeccao struct {
	Active bool         `json:"active"`
	Claims *auth.Claims `json:"claims,omitempty"`
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

var errDesativado = errs.Unauthorized("usuario", "Este usuário está desativado. Contate o administrador.")

func (s *AuthService) Login(ctx context.Context, matricula, senha string, sis models.InfoSistema) (*LoginResult, error) {
	u, err := s.Usuarios.GetByMatricula(ctx, matricula)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NotFound("matricula", "Usuário não encontrado com esta matricula.")
		}
		return nil, err
	}
	if !u.Ativo {
		return nil, errDesativado
	}
	if !auth.ConferirSenha(u.SenhaHash, senha) {
		logger(s.Log).Warn("login_failed", "matricula", matricula, "ip", sis.IP)
		return nil, errs.Unauthorized("senha", "Credenciais inválidas. Verifique seu usuário e senha.")
	}

	var sid string
	if s.Audit != nil {
		if sid, err = s.Audit.IniciarSessao(ctx, u, sis); err != nil {
			logger(s.Log).Warn("audit_start_session_failed", "matricula", matricula, "err", err)
		}
	}
	res, err := s.emitir(ctx, u, sid)
	if err != nil {
		return nil, err
	}
	res.Usuario = u
	return res, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	c, err := s.Tokens.ParseAccess(token)
	if err != nil {
		return errs.BadRequest("token", "Token inválido.")
	}
	oid, err := primitive.ObjectIDFromHex(c.UsuarioID)
	if err != nil {
		return errs.BadRequest("token", "Token inválido.")
	}
	if err := s.Usuarios.ClearTokens(ctx, oid); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	s.encerrar(ctx, c.SessaoID, "manual")
	return nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	c, err := s.Tokens.ParseRefresh(refreshToken)
	if errors.Is(err, auth.ErrTokenExpired) {
		return nil, errs.TokenExpired("refreshToken", "Refresh token expirado. Realize login novamente.")
	}
	invalido := errs.Unauthorized("refreshToken", "Refresh token inválido ou expirado.")
	if err != nil {
		return nil, invalido
	}
	oid, err := primitive.ObjectIDFromHex(c.UsuarioID)
	if err != nil {
		return nil, invalido
	}
	u, err := s.Usuarios.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalido
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(u.RefreshToken), []byte(refreshToken)) != 1 {
		return nil, invalido
	}
	if !u.Ativo {
		return nil, errDesativado
	}
	return s.emitir(ctx, u, c.SessaoID)
}

// Revoke derruba os tokens do usuário e encerra a sessão em andamento.
func (s *AuthService) Revoke(ctx context.Context, matricula string) error {
	u, err := s.Usuarios.GetByMatricula(ctx, matricula)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errs.NotFound("matricula", "Usuário não encontrado.")
		}
		return err
	}
	if err := s.Usuarios.ClearTokens(ctx, u.ID); err != nil {
		return err
	}
	if u.AccessToken != "" {
		// token expirado ainda identifica a sessão
		if c, _ := s.Tokens.ParseAccess(u.AccessToken); c != nil {
			s.encerrar(ctx, c.SessaoID, "revogado")
		}
	}
	return nil
}

// Introspect informa se o token de acesso é válido e ainda é o vigente do usuário.
func (s *AuthService) Introspect(ctx context.Context, token string) (Introspeccao, error) {
	c, err := s.Tokens.ParseAccess(token)
	if err != nil {
		return Introspeccao{Active: false}, nil
	}
	oid, err := primitive.ObjectIDFromHex(c.UsuarioID)
	if err != nil {
		return Introspeccao{Active: false}, nil
	}
	u, err := s.Usuarios.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Introspeccao{Active: false}, nil
		}
		return Introspeccao{}, err
	}
	if !u.Ativo || u.AccessToken != token {
		return Introspeccao{Active: false}, nil
	}
	return Introspeccao{Active: true, Claims: c}, nil
}

// Signup cadastra um estoquista ativo, sem grupos.
func (s *AuthService) Signup(ctx context.Context, u *models.Usuario, senha string) (*models.Usuario, error) {
	u.Perfil = models.PerfilEstoquista
	u.Ativo = true
	u.Grupos = nil
	u.Permissoes = nil
	return s.Cadastro.Create(ctx, u, senha)
}

// Recover gera código e token de recuperação e envia por e-mail. E-mail
// desconhecido responde igual para não revelar cadastros.
func (s *AuthService) Recover(ctx context.Context, email string) error {
	u, err := s.Usuarios.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger(s.Log).Info("recovery_unknown_email")
			return nil
		}
		return err
	}
	if !u.Ativo {
		return nil
	}
	codigo, err := auth.NovoCodigo()
	if err != nil {
		return err
	}
	token := auth.NovoTokenRecuperacao()
	if err := s.Usuarios.SetRecuperacao(ctx, u.ID, token, codigo, s.now().Add(s.RecoveryTTL)); err != nil {
		return err
	}
	return s.Mailer.Send(ctx, u.Email, "Recuperação de senha", mail.TemplateRecuperacao, map[string]string{
		"Nome":   u.NomeUsuario,
		"Codigo": codigo,
		"Link":   s.ResetURL + "?token=" + token,
		"Expira": fmt.Sprintf("%d minutos", int(s.RecoveryTTL.Minutes())),
	})
}

func (s *AuthService) ResetByToken(ctx context.Context, token, senha string) error {
	invalido := errs.BadRequest("token", "Token de recuperação inválido ou expirado.")
	if token == "" {
		return invalido
	}
	u, err := s.Usuarios.GetByTokenRecuperacao(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalido
		}
		return err
	}
	if s.expirado(u) {
		return invalido
	}
	return s.redefinir(ctx, u, senha)
}

func (s *AuthService) ResetByCode(ctx context.Context, email, codigo, senha string) error {
	invalido := errs.BadRequest("codigo", "Código de recuperação inválido ou expirado.")
	u, err := s.Usuarios.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalido
		}
		return err
	}
	if u.CodigoRecuperacao == "" || subtle.ConstantTimeCompare([]byte(u.CodigoRecuperacao), []byte(codigo)) != 1 || s.expirado(u) {
		return invalido
	}
	return s.redefinir(ctx, u, senha)
}

func (s *AuthService) expirado(u *models.Usuario) bool {
	return u.ExpiracaoRecuperacao == nil || s.now().After(*u.ExpiracaoRecuperacao)
}

func (s *AuthService) redefinir(ctx context.Context, u *models.Usuario, senha string) error {
	if !auth.SenhaForte(senha) {
		return errSenhaFraca
	}
	hash, err := auth.HashSenha(senha)
	if err != nil {
		return err
	}
	if err := s.Usuarios.RedefinirSenha(ctx, u.ID, hash); err != nil {
		return err
	}
	if u.AccessToken != "" {
		if c, _ := s.Tokens.ParseAccess(u.AccessToken); c != nil {
			s.encerrar(ctx, c.SessaoID, "senha_redefinida")
		}
	}
	return nil
}

func (s *AuthService) emitir(ctx context.Context, u *models.Usuario, sid string) (*LoginResult, error) {
	claims := auth.Claims{
		UsuarioID: u.ID.Hex(),
		Nome:      u.NomeUsuario,
		Matricula: u.Matricula,
		Perfil:    u.Perfil,
		SessaoID:  sid,
	}
	access, err := s.Tokens.NewAccess(claims)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Tokens.NewRefresh(claims)
	if err != nil {
		return nil, err
	}
	if err := s.Usuarios.SetTokens(ctx, u.ID, access, refresh); err != nil {
		return nil, err
	}
	u.AccessToken, u.RefreshToken = access, refresh
	return &LoginResult{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) encerrar(ctx context.Context, sid, motivo string) {
	if s.Audit != nil {
		s.Audit.EncerrarSessao(ctx, sid, motivo)
	}
}
