package handlers

import (
	"context"
	"errors"

	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
	"github.com/Werneck0live/estoque-automotivo/internal/service"
)

type produtoSvcMock struct {
	CreateFn       func(ctx context.Context, p *models.Produto) (*models.Produto, error)
	GetFn          func(ctx context.Context, id string) (*models.Produto, error)
	ListFn         func(ctx context.Context, f repository.ProdutoFiltro, page, limit int64) (models.Page[models.Produto], error)
	EstoqueBaixoFn func(ctx context.Context, page, limit int64) (models.Page[models.Produto], error)
	UpdateFn       func(ctx context.Context, id string, p models.ProdutoPatch) (*models.Produto, error)
	ReplaceFn      func(ctx context.Context, id string, p *models.Produto) (*models.Produto, error)
	DeleteFn       func(ctx context.Context, id string) error
}

func (m *produtoSvcMock) Create(ctx context.Context, p *models.Produto) (*models.Produto, error) {
	if m.CreateFn == nil {
		return nil, errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, p)
}
func (m *produtoSvcMock) Get(ctx context.Context, id string) (*models.Produto, error) {
	if m.GetFn == nil {
		return nil, errors.New("GetFn not set")
	}
	return m.GetFn(ctx, id)
}
func (m *produtoSvcMock) List(ctx context.Context, f repository.ProdutoFiltro, page, limit int64) (models.Page[models.Produto], error) {
	if m.ListFn == nil {
		return models.Page[models.Produto]{}, errors.New("ListFn not set")
	}
	return m.ListFn(ctx, f, page, limit)
}
func (m *produtoSvcMock) EstoqueBaixo(ctx context.Context, page, limit int64) (models.Page[models.Produto], error) {
	if m.EstoqueBaixoFn == nil {
		return models.Page[models.Produto]{}, errors.New("EstoqueBaixoFn not set")
	}
	return m.EstoqueBaixoFn(ctx, page, limit)
}
func (m *produtoSvcMock) Update(ctx context.Context, id string, p models.ProdutoPatch) (*models.Produto, error) {
	if m.UpdateFn == nil {
		return nil, errors.New("UpdateFn not set")
	}
	return m.UpdateFn(ctx, id, p)
}
func (m *produtoSvcMock) Replace(ctx context.Context, id string, p *models.Produto) (*models.Produto, error) {
	if m.ReplaceFn == nil {
		return nil, errors.New("ReplaceFn not set")
	}
	return m.ReplaceFn(ctx, id, p)
}
func (m *produtoSvcMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type fornecedorSvcMock struct {
	CreateFn  func(ctx context.Context, f *models.Fornecedor) (*models.Fornecedor, error)
	GetFn     func(ctx context.Context, id string) (*models.Fornecedor, error)
	ListFn    func(ctx context.Context, f repository.FornecedorFiltro, page, limit int64) (models.Page[models.Fornecedor], error)
	UpdateFn  func(ctx context.Context, id string, p models.FornecedorPatch) (*models.Fornecedor, error)
	ReplaceFn func(ctx context.Context, id string, f *models.Fornecedor) (*models.Fornecedor, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (m *fornecedorSvcMock) Create(ctx context.Context, f *models.Fornecedor) (*models.Fornecedor, error) {
	if m.CreateFn == nil {
		return nil, errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, f)
}
func (m *fornecedorSvcMock) Get(ctx context.Context, id string) (*models.Fornecedor, error) {
	if m.GetFn == nil {
		return nil, errors.New("GetFn not set")
	}
	return m.GetFn(ctx, id)
}
func (m *fornecedorSvcMock) List(ctx context.Context, f repository.FornecedorFiltro, page, limit int64) (models.Page[models.Fornecedor], error) {
	if m.ListFn == nil {
		return models.Page[models.Fornecedor]{}, errors.New("ListFn not set")
	}
	return m.ListFn(ctx, f, page, limit)
}
func (m *fornecedorSvcMock) Update(ctx context.Context, id string, p models.FornecedorPatch) (*models.Fornecedor, error) {
	if m.UpdateFn == nil {
		return nil, errors.New("UpdateFn not set")
	}
	return m.UpdateFn(ctx, id, p)
}
func (m *fornecedorSvcMock) Replace(ctx context.Context, id string, f *models.Fornecedor) (*models.Fornecedor, error) {
	if m.ReplaceFn == nil {
		return nil, errors.New("ReplaceFn not set")
	}
	return m.ReplaceFn(ctx, id, f)
}
func (m *fornecedorSvcMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type movimentacaoSvcMock struct {
	CreateFn           func(ctx context.Context, m *models.Movimentacao) (*models.Movimentacao, error)
	GetFn              func(ctx context.Context, id string) (*models.Movimentacao, error)
	ListFn             func(ctx context.Context, f repository.MovimentacaoFiltro, page, limit int64) (models.Page[models.Movimentacao], error)
	UpdateFn           func(ctx context.Context, id string, p models.MovimentacaoPatch) (*models.Movimentacao, error)
	DeleteFn           func(ctx context.Context, id string) error
	BuscarPorTipoFn    func(ctx context.Context, tipo string, page, limit int64) (models.Page[models.Movimentacao], error)
	BuscarPorPeriodoFn func(ctx context.Context, inicio, fim string, page, limit int64) (models.Page[models.Movimentacao], error)
	BuscarPorProdutoFn func(ctx context.Context, produto string, page, limit int64) (models.Page[models.Movimentacao], error)
	BuscarPorUsuarioFn func(ctx context.Context, usuario string, page, limit int64) (models.Page[models.Movimentacao], error)
}

func (m *movimentacaoSvcMock) Create(ctx context.Context, mov *models.Movimentacao) (*models.Movimentacao, error) {
	if m.CreateFn == nil {
		return nil, errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, mov)
}
func (m *movimentacaoSvcMock) Get(ctx context.Context, id string) (*models.Movimentacao, error) {
	if m.GetFn == nil {
		return nil, errors.New("GetFn not set")
	}
	return m.GetFn(ctx, id)
}
func (m *movimentacaoSvcMock) List(ctx context.Context, f repository.MovimentacaoFiltro, page, limit int64) (models.Page[models.Movimentacao], error) {
	if m.ListFn == nil {
		return models.Page[models.Movimentacao]{}, errors.New("ListFn not set")
	}
	return m.ListFn(ctx, f, page, limit)
}
func (m *movimentacaoSvcMock) Update(ctx context.Context, id string, p models.MovimentacaoPatch) (*models.Movimentacao, error) {
	if m.UpdateFn == nil {
		return nil, errors.New("UpdateFn not set")
	}
	return m.UpdateFn(ctx, id, p)
}
func (m *movimentacaoSvcMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}
func (m *movimentacaoSvcMock) BuscarPorTipo(ctx context.Context, tipo string, page, limit int64) (models.Page[models.Movimentacao], error) {
	if m.BuscarPorTipoFn == nil {
		return models.Page[models.Movimentacao]{}, errors.New("BuscarPorTipoFn not set")
	}
	return m.BuscarPorTipoFn(ctx, tipo, page, limit)
}
func (m *movimentacaoSvcMock) BuscarPorPeriodo(ctx context.Context, inicio, fim string, page, limit int64) (models.Page[models.Movimentacao], error) {
	if m.BuscarPorPeriodoFn == nil {
		return models.Page[models.Movimentacao]{}, errors.New("BuscarPorPeriodoFn not set")
	}
	return m.BuscarPorPeriodoFn(ctx, inicio, fim, page, limit)
}
func (m *movimentacaoSvcMock) BuscarPorProduto(ctx context.Context, produto string, page, limit int64) (models.Page[models.Movimentacao], error) {
	if m.BuscarPorProdutoFn == nil {
		return models.Page[models.Movimentacao]{}, errors.New("BuscarPorProdutoFn not set")
	}
	return m.BuscarPorProdutoFn(ctx, produto, page, limit)
}
func (m *movimentacaoSvcMock) BuscarPorUsuario(ctx context.Context, usuario string, page, limit int64) (models.Page[models.Movimentacao], error) {
	if m.BuscarPorUsuarioFn == nil {
		return models.Page[models.Movimentacao]{}, errors.New("BuscarPorUsuarioFn not set")
	}
	return m.BuscarPorUsuarioFn(ctx, usuario, page, limit)
}

type usuarioSvcMock struct {
	CreateFn    func(ctx context.Context, u *models.Usuario, senha string) (*models.Usuario, error)
	ListFn      func(ctx context.Context, f repository.UsuarioFiltro, page, limit int64) (models.Page[models.Usuario], error)
	BuscarFn    func(ctx context.Context, nome string, page, limit int64) (models.Page[models.Usuario], error)
	GetFn       func(ctx context.Context, matricula string) (*models.Usuario, error)
	UpdateFn    func(ctx context.Context, matricula string, p models.UsuarioPatch, senha *string) (*models.Usuario, error)
	DeleteFn    func(ctx context.Context, matricula string) error
	DoUsuarioFn func(ctx context.Context, u *models.Usuario) (service.PermissoesUsuario, error)
}

func (m *usuarioSvcMock) Create(ctx context.Context, u *models.Usuario, senha string) (*models.Usuario, error) {
	if m.CreateFn == nil {
		return nil, errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, u, senha)
}
func (m *usuarioSvcMock) List(ctx context.Context, f repository.UsuarioFiltro, page, limit int64) (models.Page[models.Usuario], error) {
	if m.ListFn == nil {
		return models.Page[models.Usuario]{}, errors.New("ListFn not set")
	}
	return m.ListFn(ctx, f, page, limit)
}
func (m *usuarioSvcMock) Buscar(ctx context.Context, nome string, page, limit int64) (models.Page[models.Usuario], error) {
	if m.BuscarFn == nil {
		return models.Page[models.Usuario]{}, errors.New("BuscarFn not set")
	}
	return m.BuscarFn(ctx, nome, page, limit)
}
func (m *usuarioSvcMock) Get(ctx context.Context, matricula string) (*models.Usuario, error) {
	if m.GetFn == nil {
		return nil, errors.New("GetFn not set")
	}
	return m.GetFn(ctx, matricula)
}
func (m *usuarioSvcMock) Update(ctx context.Context, matricula string, p models.UsuarioPatch, senha *string) (*models.Usuario, error) {
	if m.UpdateFn == nil {
		return nil, errors.New("UpdateFn not set")
	}
	return m.UpdateFn(ctx, matricula, p, senha)
}
func (m *usuarioSvcMock) Delete(ctx context.Context, matricula string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, matricula)
}
func (m *usuarioSvcMock) DoUsuario(ctx context.Context, u *models.Usuario) (service.PermissoesUsuario, error) {
	if m.DoUsuarioFn == nil {
		return service.PermissoesUsuario{}, errors.New("DoUsuarioFn not set")
	}
	return m.DoUsuarioFn(ctx, u)
}

type grupoSvcMock struct {
	CreateFn          func(ctx context.Context, g *models.Grupo) (*models.Grupo, error)
	GetFn             func(ctx context.Context, id string) (*models.Grupo, error)
	ListFn            func(ctx context.Context, f repository.GrupoFiltro, page, limit int64) (models.Page[models.Grupo], error)
	UpdateFn          func(ctx context.Context, id string, p models.GrupoPatch) (*models.Grupo, error)
	DeleteFn          func(ctx context.Context, id string) error
	SetAtivoFn        func(ctx context.Context, id string, ativo bool) (*models.Grupo, error)
	AddPermissaoFn    func(ctx context.Context, id string, p models.Permissao) (*models.Grupo, error)
	RemovePermissaoFn func(ctx context.Context, id, rota, dominio string) (*models.Grupo, error)
}

func (m *grupoSvcMock) Create(ctx context.Context, g *models.Grupo) (*models.Grupo, error) {
	if m.CreateFn == nil {
		return nil, errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, g)
}
func (m *grupoSvcMock) Get(ctx context.Context, id string) (*models.Grupo, error) {
	if m.GetFn == nil {
		return nil, errors.New("GetFn not set")
	}
	return m.GetFn(ctx, id)
}
func (m *grupoSvcMock) List(ctx context.Context, f repository.GrupoFiltro, page, limit int64) (models.Page[models.Grupo], error) {
	if m.ListFn == nil {
		return models.Page[models.Grupo]{}, errors.New("ListFn not set")
	}
	return m.ListFn(ctx, f, page, limit)
}
func (m *grupoSvcMock) Update(ctx context.Context, id string, p models.GrupoPatch) (*models.Grupo, error) {
	if m.UpdateFn == nil {
		return nil, errors.New("UpdateFn not set")
	}
	return m.UpdateFn(ctx, id, p)
}
func (m *grupoSvcMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}
func (m *grupoSvcMock) SetAtivo(ctx context.Context, id string, ativo bool) (*models.Grupo, error) {
	if m.SetAtivoFn == nil {
		return nil, errors.New("SetAtivoFn not set")
	}
	return m.SetAtivoFn(ctx, id, ativo)
}
func (m *grupoSvcMock) AddPermissao(ctx context.Context, id string, p models.Permissao) (*models.Grupo, error) {
	if m.AddPermissaoFn == nil {
		return nil, errors.New("AddPermissaoFn not set")
	}
	return m.AddPermissaoFn(ctx, id, p)
}
func (m *grupoSvcMock) RemovePermissao(ctx context.Context, id, rota, dominio string) (*models.Grupo, error) {
	if m.RemovePermissaoFn == nil {
		return nil, errors.New("RemovePermissaoFn not set")
	}
	return m.RemovePermissaoFn(ctx, id, rota, dominio)
}

type authSvcMock struct {
	LoginFn        func(ctx context.Context, matricula, senha string, sis models.InfoSistema) (*service.LoginResult, error)
	LogoutFn       func(ctx context.Context, token string) error
	RefreshFn      func(ctx context.Context, refreshToken string) (*service.LoginResult, error)
	RevokeFn       func(ctx context.Context, matricula string) error
	IntrospectFn   func(ctx context.Context, token string) (service.Introspeccao, error)
	SignupFn       func(ctx context.Context, u *models.Usuario, senha string) (*models.Usuario, error)
	RecoverFn      func(ctx context.Context, email string) error
	ResetByTokenFn func(ctx context.Context, token, senha string) error
	ResetByCodeFn  func(ctx context.Context, email, codigo, senha string) error
}

func (m *authSvcMock) Login(ctx context.Context, matricula, senha string, sis models.InfoSistema) (*service.LoginResult, error) {
	if m.LoginFn == nil {
		return nil, errors.New("LoginFn not set")
	}
	return m.LoginFn(ctx, matricula, senha, sis)
}
func (m *authSvcMock) Logout(ctx context.Context, token string) error {
	if m.LogoutFn == nil {
		return errors.New("LogoutFn not set")
	}
	return m.LogoutFn(ctx, token)
}
func (m *authSvcMock) Refresh(ctx context.Context, refreshToken string) (*service.LoginResult, error) {
	if m.RefreshFn == nil {
		return nil, errors.New("RefreshFn not set")
	}
	return m.RefreshFn(ctx, refreshToken)
}
func (m *authSvcMock) Revoke(ctx context.Context, matricula string) error {
	if m.RevokeFn == nil {
		return errors.New("RevokeFn not set")
	}
	return m.RevokeFn(ctx, matricula)
}
func (m *authSvcMock) Introspect(ctx context.Context, token string) (service.Introspeccao, error) {
	if m.IntrospectFn == nil {
		return service.Introspeccao{}, errors.New("IntrospectFn not set")
	}
	return m.IntrospectFn(ctx, token)
}
func (m *authSvcMock) Signup(ctx context.Context, u *models.Usuario, senha string) (*models.Usuario, error) {
	if m.SignupFn == nil {
		return nil, errors.New("SignupFn not set")
	}
	return m.SignupFn(ctx, u, senha)
}
func (m *authSvcMock) Recover(ctx context.Context, email string) error {
	if m.RecoverFn == nil {
		return errors.New("RecoverFn not set")
	}
	return m.RecoverFn(ctx, email)
}
func (m *authSvcMock) ResetByToken(ctx context.Context, token, senha string) error {
	if m.ResetByTokenFn == nil {
		return errors.New("ResetByTokenFn not set")
	}
	return m.ResetByTokenFn(ctx, token, senha)
}
func (m *authSvcMock) ResetByCode(ctx context.Context, email, codigo, senha string) error {
	if m.ResetByCodeFn == nil {
		return errors.New("ResetByCodeFn not set")
	}
	return m.ResetByCodeFn(ctx, email, codigo, senha)
}

type recorderMock struct {
	RegistrarFn func(ctx context.Context, sessaoID string, e models.Evento)
}

func (m *recorderMock) Registrar(ctx context.Context, sessaoID string, e models.Evento) {
	if m.RegistrarFn != nil {
		m.RegistrarFn(ctx, sessaoID, e)
	}
}

type auditSvcMock struct {
	LogsDoUsuarioFn  func(ctx context.Context, solicitante *models.Usuario, usuarioID string, limite int64) ([]models.Sessao, error)
	BuscarFn         func(ctx context.Context, tipo, inicio, fim string) ([]models.EventoUsuario, error)
	EstatisticasFn   func(ctx context.Context) (models.Estatisticas, error)
	CriticosFn       func(ctx context.Context, dias int) ([]models.EventoUsuario, error)
	UsuariosOnlineFn func(ctx context.Context) ([]models.Sessao, error)
}

func (m *auditSvcMock) LogsDoUsuario(ctx context.Context, solicitante *models.Usuario, usuarioID string, limite int64) ([]models.Sessao, error) {
	if m.LogsDoUsuarioFn == nil {
		return nil, errors.New("LogsDoUsuarioFn not set")
	}
	return m.LogsDoUsuarioFn(ctx, solicitante, usuarioID, limite)
}
func (m *auditSvcMock) Buscar(ctx context.Context, tipo, inicio, fim string) ([]models.EventoUsuario, error) {
	if m.BuscarFn == nil {
		return nil, errors.New("BuscarFn not set")
	}
	return m.BuscarFn(ctx, tipo, inicio, fim)
}
func (m *auditSvcMock) Estatisticas(ctx context.Context) (models.Estatisticas, error) {
	if m.EstatisticasFn == nil {
		return models.Estatisticas{}, errors.New("EstatisticasFn not set")
	}
	return m.EstatisticasFn(ctx)
}
func (m *auditSvcMock) Criticos(ctx context.Context, dias int) ([]models.EventoUsuario, error) {
	if m.CriticosFn == nil {
		return nil, errors.New("CriticosFn not set")
	}
	return m.CriticosFn(ctx, dias)
}
func (m *auditSvcMock) UsuariosOnline(ctx context.Context) ([]models.Sessao, error) {
	if m.UsuariosOnlineFn == nil {
		return nil, errors.New("UsuariosOnlineFn not set")
	}
	return m.UsuariosOnlineFn(ctx)
}
