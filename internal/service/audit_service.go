package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
)

type SessaoStore interface {
	Create(ctx context.Context, s *models.Sessao) error
	AppendEvento(ctx context.Context, id string, e models.Evento) error
	Encerrar(ctx context.Context, id string, fim time.Time, e models.Evento) error
	ListByUsuario(ctx context.Context, usuarioID string, limit int64) ([]models.Sessao, error)
	ListAbertas(ctx context.Context) ([]models.Sessao, error)
	BuscarEventos(ctx context.Context, f repository.EventoFiltro) ([]models.EventoUsuario, error)
	ContarEventos(ctx context.Context, f repository.EventoFiltro) (map[string]int, error)
	UsuariosDistintos(ctx context.Context, tipos []string) (int, error)
}

// AuditService registra as sessões de uso (login até logout) e responde às consultas de logs.
type AuditService struct {
	Sessoes SessaoStore
	Now     func() time.Time
	Log     *slog.Logger
}

func (s *AuditService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// IniciarSessao abre a sessão com o evento de LOGIN e devolve o id (ULID).
func (s *AuditService) IniciarSessao(ctx context.Context, u *models.Usuario, sis models.InfoSistema) (string, error) {
	now := s.now().UTC()
	sessao := &models.Sessao{
		ID: ulid.Make().String(),
		Usuario: models.UsuarioSessao{
			ID:        u.ID.Hex(),
			Matricula: u.Matricula,
			Nome:      u.NomeUsuario,
			Perfil:    u.Perfil,
		},
		Sistema: sis,
		Inicio:  now,
		Eventos: []models.Evento{{
			Timestamp: now,
			Tipo:      models.EventoLogin,
			IP:        sis.IP,
			Dados:     map[string]any{"tipo": "login_sucesso", "matricula": u.Matricula},
		}},
	}
	if err := s.Sessoes.Create(ctx, sessao); err != nil {
		return "", err
	}
	return sessao.ID, nil
}

// Registrar anexa um evento à sessão; falhas só são logadas.
func (s *AuditService) Registrar(ctx context.Context, sessaoID string, e models.Evento) {
	if sessaoID == "" {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now().UTC()
	}
	if err := s.Sessoes.AppendEvento(ctx, sessaoID, e); err != nil {
		logger(s.Log).Warn("audit_event_failed", "sessao", sessaoID, "tipo", e.Tipo, "err", err)
	}
}

// EncerrarSessao grava o LOGOUT; motivo: manual, revogado, senha_redefinida.
func (s *AuditService) EncerrarSessao(ctx context.Context, sessaoID, motivo string) {
	if sessaoID == "" {
		return
	}
	now := s.now().UTC()
	e := models.Evento{Timestamp: now, Tipo: models.EventoLogout, Dados: map[string]any{"tipo": motivo}}
	if err := s.Sessoes.Encerrar(ctx, sessaoID, now, e); err != nil {
		logger(s.Log).Warn("audit_end_session_failed", "sessao", sessaoID, "err", err)
	}
}

// LogsDoUsuario: administradores veem qualquer usuário; os demais, só os próprios logs.
func (s *AuditService) LogsDoUsuario(ctx context.Context, solicitante *models.Usuario, usuarioID string, limite int64) ([]models.Sessao, error) {
	if !solicitante.Administrador() && solicitante.ID.Hex() != usuarioID {
		return nil, errs.Forbidden("userId", "Acesso negado. Você só pode visualizar seus próprios logs")
	}
	if limite <= 0 {
		limite = 10
	}
	return s.Sessoes.ListByUsuario(ctx, usuarioID, limite)
}

func (s *AuditService) Buscar(ctx context.Context, tipo, inicio, fim string) ([]models.EventoUsuario, error) {
	if tipo == "" {
		return nil, errs.BadRequest("eventType", "Tipo de evento é obrigatório")
	}
	f := repository.EventoFiltro{Tipos: []string{tipo}}
	if inicio != "" {
		t, err := ParseData(inicio, false)
		if err != nil {
			return nil, errs.BadRequest("startDate", "Data inicial inválida")
		}
		f.Inicio = &t
	}
	if fim != "" {
		t, err := ParseData(fim, true)
		if err != nil {
			return nil, errs.BadRequest("endDate", "Data final inválida")
		}
		f.Fim = &t
	}
	return s.Sessoes.BuscarEventos(ctx, f)
}

func (s *AuditService) Estatisticas(ctx context.Context) (models.Estatisticas, error) {
	counts, err := s.Sessoes.ContarEventos(ctx, repository.EventoFiltro{})
	if err != nil {
		return models.Estatisticas{}, err
	}
	ativos, err := s.Sessoes.UsuariosDistintos(ctx, []string{models.EventoLogin, models.EventoEstoqueMovimento})
	if err != nil {
		return models.Estatisticas{}, err
	}
	return models.Estatisticas{
		TotalLogins:          counts[models.EventoLogin],
		TotalLogouts:         counts[models.EventoLogout],
		MovimentacoesEstoque: counts[models.EventoEstoqueMovimento],
		EventosCriticos:      counts[models.EventoTokenRevoke],
		UsuariosAtivos:       ativos,
	}, nil
}

// Criticos lista os eventos críticos dos últimos dias, mais recentes primeiro.
func (s *AuditService) Criticos(ctx context.Context, dias int) ([]models.EventoUsuario, error) {
	if dias <= 0 {
		dias = 7
	}
	desde := s.now().UTC().AddDate(0, 0, -dias)
	return s.Sessoes.BuscarEventos(ctx, repository.EventoFiltro{Tipos: models.EventosCriticos, Inicio: &desde})
}

func (s *AuditService) UsuariosOnline(ctx context.Context) ([]models.Sessao, error) {
	return s.Sessoes.ListAbertas(ctx)
}
