package service

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/broker"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
)

// fakeProdutos guarda produtos em memória com a mesma semântica de estoque do repositório.
type fakeProdutos struct {
	mu    sync.Mutex
	itens map[primitive.ObjectID]*models.Produto
}

func newFakeProdutos(ps ...models.Produto) *fakeProdutos {
	f := &fakeProdutos{itens: map[primitive.ObjectID]*models.Produto{}}
	for i := range ps {
		p := ps[i]
		f.itens[p.ID] = &p
	}
	return f
}

func (f *fakeProdutos) estoque(id primitive.ObjectID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.itens[id].Estoque
}

func (f *fakeProdutos) GetByID(_ context.Context, id primitive.ObjectID) (*models.Produto, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.itens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProdutos) AjustarEstoque(_ context.Context, id primitive.ObjectID, delta int, _ bool) (*models.Produto, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.itens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Estoque+delta < 0 {
		return nil, repository.ErrEstoqueInsuficiente
	}
	p.Estoque += delta
	cp := *p
	return &cp, nil
}

func (f *fakeProdutos) RemoverEstoque(_ context.Context, id primitive.ObjectID, q int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.itens[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	removido := min(q, p.Estoque)
	p.Estoque -= removido
	return removido, nil
}

// estoqueInstavel falha as devoluções ao estoque de um produto.
type estoqueInstavel struct {
	*fakeProdutos
	falhaEm primitive.ObjectID
}

func (e *estoqueInstavel) AjustarEstoque(ctx context.Context, id primitive.ObjectID, delta int, marcar bool) (*models.Produto, error) {
	if id == e.falhaEm && delta > 0 {
		return nil, errors.New("mongo: connection reset")
	}
	return e.fakeProdutos.AjustarEstoque(ctx, id, delta, marcar)
}

type fakeMovs struct {
	itens     map[primitive.ObjectID]*models.Movimentacao
	createErr error
	updateErr error
	deleteErr error
	lastList  repository.MovimentacaoFiltro
}

func newFakeMovs() *fakeMovs {
	return &fakeMovs{itens: map[primitive.ObjectID]*models.Movimentacao{}}
}

func (f *fakeMovs) Create(_ context.Context, m *models.Movimentacao) error {
	if f.createErr != nil {
		return f.createErr
	}
	m.ID = primitive.NewObjectID()
	cp := *m
	f.itens[m.ID] = &cp
	return nil
}

func (f *fakeMovs) GetByID(_ context.Context, id primitive.ObjectID) (*models.Movimentacao, error) {
	m, ok := f.itens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMovs) List(_ context.Context, flt repository.MovimentacaoFiltro, page, limit int64) (models.Page[models.Movimentacao], error) {
	f.lastList = flt
	return models.NewPage([]models.Movimentacao{}, 0, page, limit), nil
}

func (f *fakeMovs) Update(_ context.Context, id primitive.ObjectID, p models.MovimentacaoPatch) (*models.Movimentacao, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	m, ok := f.itens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Tipo != nil {
		m.Tipo = *p.Tipo
	}
	if p.Destino != nil {
		m.Destino = *p.Destino
	}
	if p.Produtos != nil {
		m.Produtos = p.Produtos
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMovs) Delete(_ context.Context, id primitive.ObjectID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.itens[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.itens, id)
	return nil
}

type fakePub struct {
	mu      sync.Mutex
	eventos []broker.Evento
}

func (p *fakePub) Publish(_ context.Context, e broker.Evento) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.eventos = append(p.eventos, e)
	return nil
}

func (p *fakePub) tipos() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.eventos))
	for _, e := range p.eventos {
		out = append(out, e.Tipo)
	}
	return out
}
