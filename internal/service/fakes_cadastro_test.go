package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
)

type fakeUsuarios struct {
	itens map[primitive.ObjectID]*models.Usuario
}

func newFakeUsuarios(us ...models.Usuario) *fakeUsuarios {
	f := &fakeUsuarios{itens: map[primitive.ObjectID]*models.Usuario{}}
	for i := range us {
		u := us[i]
		f.itens[u.ID] = &u
	}
	return f
}

func (f *fakeUsuarios) find(pred func(*models.Usuario) bool) (*models.Usuario, error) {
	for _, u := range f.itens {
		if pred(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsuarios) Create(_ context.Context, u *models.Usuario) error {
	for _, o := range f.itens {
		if o.Matricula == u.Matricula || o.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	f.itens[u.ID] = &cp
	return nil
}

func (f *fakeUsuarios) GetByID(_ context.Context, id primitive.ObjectID) (*models.Usuario, error) {
	return f.find(func(u *models.Usuario) bool { return u.ID == id })
}

func (f *fakeUsuarios) GetByMatricula(_ context.Context, m string) (*models.Usuario, error) {
	return f.find(func(u *models.Usuario) bool { return u.Matricula == m })
}

func (f *fakeUsuarios) GetByEmail(_ context.Context, e string) (*models.Usuario, error) {
	return f.find(func(u *models.Usuario) bool { return u.Email == e })
}

func (f *fakeUsuarios) GetByTokenRecuperacao(_ context.Context, t string) (*models.Usuario, error) {
	return f.find(func(u *models.Usuario) bool { return u.TokenRecuperacao != "" && u.TokenRecuperacao == t })
}

func (f *fakeUsuarios) List(_ context.Context, flt repository.UsuarioFiltro, page, limit int64) (models.Page[models.Usuario], error) {
	var out []models.Usuario
	for _, u := range f.itens {
		if flt.NomeUsuario == "" || strings.Contains(strings.ToLower(u.NomeUsuario), strings.ToLower(flt.NomeUsuario)) {
			out = append(out, *u)
		}
	}
	return models.NewPage(out, int64(len(out)), page, limit), nil
}

func (f *fakeUsuarios) Update(_ context.Context, id primitive.ObjectID, p models.UsuarioPatch) (*models.Usuario, error) {
	u, ok := f.itens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.NomeUsuario != nil {
		u.NomeUsuario = *p.NomeUsuario
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Perfil != nil {
		u.Perfil = *p.Perfil
	}
	if p.Ativo != nil {
		u.Ativo = *p.Ativo
	}
	if p.Grupos != nil {
		u.Grupos = *p.Grupos
	}
	if p.Permissoes != nil {
		u.Permissoes = *p.Permissoes
	}
	if p.SenhaHash != nil {
		u.SenhaHash = *p.SenhaHash
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsuarios) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.itens[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.itens, id)
	return nil
}

func (f *fakeUsuarios) SetTokens(_ context.Context, id primitive.ObjectID, access, refresh string) error {
	u, ok := f.itens[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.AccessToken, u.RefreshToken = access, refresh
	return nil
}

func (f *fakeUsuarios) ClearTokens(_ context.Context, id primitive.ObjectID) error {
	u, ok := f.itens[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.AccessToken, u.RefreshToken = "", ""
	return nil
}

func (f *fakeUsuarios) SetRecuperacao(_ context.Context, id primitive.ObjectID, token, codigo string, expira time.Time) error {
	u, ok := f.itens[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.TokenRecuperacao, u.CodigoRecuperacao, u.ExpiracaoRecuperacao = token, codigo, &expira
	return nil
}

func (f *fakeUsuarios) RedefinirSenha(_ context.Context, id primitive.ObjectID, hash string) error {
	u, ok := f.itens[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.SenhaHash = hash
	u.TokenRecuperacao, u.CodigoRecuperacao, u.ExpiracaoRecuperacao = "", "", nil
	u.AccessToken, u.RefreshToken = "", ""
	return nil
}

func (f *fakeUsuarios) RemoveGrupo(_ context.Context, grupoID primitive.ObjectID) (int64, error) {
	var n int64
	for _, u := range f.itens {
		for i, g := range u.Grupos {
			if g == grupoID {
				u.Grupos = append(u.Grupos[:i:i], u.Grupos[i+1:]...)
				n++
				break
			}
		}
	}
	return n, nil
}

type fakeGrupos struct {
	itens map[primitive.ObjectID]*models.Grupo
}

func newFakeGrupos(gs ...models.Grupo) *fakeGrupos {
	f := &fakeGrupos{itens: map[primitive.ObjectID]*models.Grupo{}}
	for i := range gs {
		g := gs[i]
		f.itens[g.ID] = &g
	}
	return f
}

func (f *fakeGrupos) get(id primitive.ObjectID) (*models.Grupo, error) {
	g, ok := f.itens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGrupos) Create(_ context.Context, g *models.Grupo) error {
	g.ID = primitive.NewObjectID()
	cp := *g
	f.itens[g.ID] = &cp
	return nil
}

func (f *fakeGrupos) GetByID(_ context.Context, id primitive.ObjectID) (*models.Grupo, error) {
	return f.get(id)
}

func (f *fakeGrupos) GetByNome(_ context.Context, nome string, excludeID *primitive.ObjectID) (*models.Grupo, error) {
	for _, g := range f.itens {
		if excludeID != nil && g.ID == *excludeID {
			continue
		}
		if strings.EqualFold(g.Nome, nome) {
			return f.get(g.ID)
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeGrupos) GetMany(_ context.Context, ids []primitive.ObjectID) ([]models.Grupo, error) {
	out := []models.Grupo{}
	for _, id := range ids {
		if g, ok := f.itens[id]; ok {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGrupos) List(_ context.Context, _ repository.GrupoFiltro, page, limit int64) (models.Page[models.Grupo], error) {
	out := []models.Grupo{}
	for _, g := range f.itens {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return models.NewPage(out, int64(len(out)), page, limit), nil
}

func (f *fakeGrupos) Update(_ context.Context, id primitive.ObjectID, p models.GrupoPatch) (*models.Grupo, error) {
	g, ok := f.itens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Nome != nil {
		g.Nome = *p.Nome
	}
	if p.Descricao != nil {
		g.Descricao = *p.Descricao
	}
	if p.Ativo != nil {
		g.Ativo = *p.Ativo
	}
	if p.Permissoes != nil {
		g.Permissoes = *p.Permissoes
	}
	return f.get(id)
}

func (f *fakeGrupos) SetAtivo(_ context.Context, id primitive.ObjectID, ativo bool) (*models.Grupo, error) {
	g, ok := f.itens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	g.Ativo = ativo
	return f.get(id)
}

func (f *fakeGrupos) AddPermissao(_ context.Context, id primitive.ObjectID, p models.Permissao) (*models.Grupo, error) {
	g, ok := f.itens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	g.Permissoes = append(g.Permissoes, p)
	return f.get(id)
}

func (f *fakeGrupos) RemovePermissao(_ context.Context, id primitive.ObjectID, rota, dominio string) (*models.Grupo, error) {
	g, ok := f.itens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	kept := g.Permissoes[:0:0]
	for _, p := range g.Permissoes {
		if p.Rota != rota || p.Dominio != dominio {
			kept = append(kept, p)
		}
	}
	g.Permissoes = kept
	return f.get(id)
}

func (f *fakeGrupos) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.itens[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.itens, id)
	return nil
}

type fakeSessoes struct {
	itens map[string]*models.Sessao
}

func newFakeSessoes() *fakeSessoes {
	return &fakeSessoes{itens: map[string]*models.Sessao{}}
}

func (f *fakeSessoes) Create(_ context.Context, s *models.Sessao) error {
	cp := *s
	f.itens[s.ID] = &cp
	return nil
}

func (f *fakeSessoes) AppendEvento(_ context.Context, id string, e models.Evento) error {
	s, ok := f.itens[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Eventos = append(s.Eventos, e)
	return nil
}

func (f *fakeSessoes) Encerrar(_ context.Context, id string, fim time.Time, e models.Evento) error {
	s, ok := f.itens[id]
	if !ok {
		return repository.ErrNotFound
	}
	if s.Fim != nil {
		return nil
	}
	s.Fim = &fim
	s.DuracaoSegundos = int64(fim.Sub(s.Inicio).Seconds())
	s.Eventos = append(s.Eventos, e)
	return nil
}

func (f *fakeSessoes) ListByUsuario(_ context.Context, usuarioID string, limit int64) ([]models.Sessao, error) {
	out := []models.Sessao{}
	for _, s := range f.itens {
		if s.Usuario.ID == usuarioID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Inicio.After(out[j].Inicio) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSessoes) ListAbertas(_ context.Context) ([]models.Sessao, error) {
	out := []models.Sessao{}
	for _, s := range f.itens {
		if s.Fim == nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessoes) eventos(flt repository.EventoFiltro) []models.EventoUsuario {
	out := []models.EventoUsuario{}
	for _, s := range f.itens {
		for _, e := range s.Eventos {
			if len(flt.Tipos) > 0 && !containsStr(flt.Tipos, e.Tipo) {
				continue
			}
			if flt.Inicio != nil && e.Timestamp.Before(*flt.Inicio) {
				continue
			}
			if flt.Fim != nil && e.Timestamp.After(*flt.Fim) {
				continue
			}
			out = append(out, models.EventoUsuario{Sessao: s.ID, Usuario: s.Usuario, Evento: e})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Evento.Timestamp.After(out[j].Evento.Timestamp) })
	return out
}

func (f *fakeSessoes) BuscarEventos(_ context.Context, flt repository.EventoFiltro) ([]models.EventoUsuario, error) {
	return f.eventos(flt), nil
}

func (f *fakeSessoes) ContarEventos(_ context.Context, flt repository.EventoFiltro) (map[string]int, error) {
	out := map[string]int{}
	for _, e := range f.eventos(flt) {
		out[e.Evento.Tipo]++
	}
	return out, nil
}

func (f *fakeSessoes) UsuariosDistintos(_ context.Context, tipos []string) (int, error) {
	vistos := map[string]bool{}
	for _, e := range f.eventos(repository.EventoFiltro{Tipos: tipos}) {
		vistos[e.Usuario.ID] = true
	}
	return len(vistos), nil
}

func containsStr(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// fakeFornecedores também conta produtos vinculados.
type fakeFornecedores struct {
	itens    map[primitive.ObjectID]*models.Fornecedor
	vinculos map[primitive.ObjectID]int64
}

func newFakeFornecedores(fs ...models.Fornecedor) *fakeFornecedores {
	f := &fakeFornecedores{itens: map[primitive.ObjectID]*models.Fornecedor{}, vinculos: map[primitive.ObjectID]int64{}}
	for i := range fs {
		x := fs[i]
		f.itens[x.ID] = &x
	}
	return f
}

func (f *fakeFornecedores) Create(_ context.Context, x *models.Fornecedor) error {
	for _, o := range f.itens {
		if o.CNPJ == x.CNPJ {
			return repository.ErrDuplicate
		}
	}
	x.ID = primitive.NewObjectID()
	cp := *x
	f.itens[x.ID] = &cp
	return nil
}

func (f *fakeFornecedores) GetByID(_ context.Context, id primitive.ObjectID) (*models.Fornecedor, error) {
	x, ok := f.itens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *x
	return &cp, nil
}

func (f *fakeFornecedores) List(_ context.Context, _ repository.FornecedorFiltro, page, limit int64) (models.Page[models.Fornecedor], error) {
	out := []models.Fornecedor{}
	for _, x := range f.itens {
		out = append(out, *x)
	}
	return models.NewPage(out, int64(len(out)), page, limit), nil
}

func (f *fakeFornecedores) Update(ctx context.Context, id primitive.ObjectID, p models.FornecedorPatch) (*models.Fornecedor, error) {
	x, ok := f.itens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.CNPJ != nil {
		x.CNPJ = *p.CNPJ
	}
	if p.NomeFornecedor != nil {
		x.NomeFornecedor = *p.NomeFornecedor
	}
	if p.Endereco != nil {
		x.Endereco = p.Endereco
	}
	return f.GetByID(ctx, id)
}

func (f *fakeFornecedores) Replace(ctx context.Context, id primitive.ObjectID, x *models.Fornecedor) (*models.Fornecedor, error) {
	if _, ok := f.itens[id]; !ok {
		return nil, repository.ErrNotFound
	}
	cp := *x
	cp.ID = id
	f.itens[id] = &cp
	return f.GetByID(ctx, id)
}

func (f *fakeFornecedores) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.itens[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.itens, id)
	return nil
}

func (f *fakeFornecedores) CountByFornecedor(_ context.Context, id primitive.ObjectID) (int64, error) {
	return f.vinculos[id], nil
}

// fakeCatalogo cobre o CRUD de produtos usado pelo ProdutoService.
type fakeCatalogo struct {
	itens     map[primitive.ObjectID]*models.Produto
	lastPatch models.ProdutoPatch
}

func newFakeCatalogo() *fakeCatalogo {
	return &fakeCatalogo{itens: map[primitive.ObjectID]*models.Produto{}}
}

func (f *fakeCatalogo) Create(_ context.Context, p *models.Produto) error {
	for _, o := range f.itens {
		if o.NomeProduto == p.NomeProduto || o.CodigoProduto == p.CodigoProduto {
			return repository.ErrDuplicate
		}
	}
	p.ID = primitive.NewObjectID()
	cp := *p
	f.itens[p.ID] = &cp
	return nil
}

func (f *fakeCatalogo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Produto, error) {
	p, ok := f.itens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCatalogo) List(_ context.Context, _ repository.ProdutoFiltro, page, limit int64) (models.Page[models.Produto], error) {
	return models.NewPage([]models.Produto{}, 0, page, limit), nil
}

func (f *fakeCatalogo) ListEstoqueBaixo(_ context.Context, page, limit int64) (models.Page[models.Produto], error) {
	out := []models.Produto{}
	for _, p := range f.itens {
		if p.EstoqueBaixo() {
			out = append(out, *p)
		}
	}
	return models.NewPage(out, int64(len(out)), page, limit), nil
}

func (f *fakeCatalogo) Update(ctx context.Context, id primitive.ObjectID, p models.ProdutoPatch) (*models.Produto, error) {
	f.lastPatch = p
	x, ok := f.itens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Preco != nil {
		x.Preco = *p.Preco
	}
	if p.Categoria != nil {
		x.Categoria = *p.Categoria
	}
	if p.NomeProduto != nil {
		x.NomeProduto = *p.NomeProduto
	}
	return f.GetByID(ctx, id)
}

func (f *fakeCatalogo) Replace(ctx context.Context, id primitive.ObjectID, p *models.Produto) (*models.Produto, error) {
	if _, ok := f.itens[id]; !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	cp.ID = id
	f.itens[id] = &cp
	return f.GetByID(ctx, id)
}

func (f *fakeCatalogo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.itens[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.itens, id)
	return nil
}
