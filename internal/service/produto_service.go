package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/broker"
	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

type ProdutoStore interface {
	Create(ctx context.Context, p *models.Produto) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Produto, error)
	List(ctx context.Context, f repository.ProdutoFiltro, page, limit int64) (models.Page[models.Produto], error)
	ListEstoqueBaixo(ctx context.Context, page, limit int64) (models.Page[models.Produto], error)
	Update(ctx context.Context, id primitive.ObjectID, p models.ProdutoPatch) (*models.Produto, error)
	Replace(ctx context.Context, id primitive.ObjectID, p *models.Produto) (*models.Produto, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProdutoService struct {
	Produtos     ProdutoStore
	Fornecedores FornecedorGetter
	Pub          EventPublisher
	Log          *slog.Logger
}

var errProdutoDuplicado = errs.Conflict("nome_produto", "Já existe um produto com este nome ou código.")

func produtoID(id string) (primitive.ObjectID, error) {
	oid, err := repository.ObjectID(id)
	if err != nil {
		return oid, errs.BadRequest("id", "ID do produto inválido.")
	}
	return oid, nil
}

func produtoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errs.NotFound("id", "Produto não encontrado.")
	case errors.Is(err, repository.ErrDuplicate):
		return errProdutoDuplicado
	}
	return err
}

// categoria vazia é derivada da faixa de preço
func categorizar(categoria string, preco float64) (string, error) {
	if c := strings.TrimSpace(categoria); c != "" {
		return strings.ToUpper(c), nil
	}
	c, err := utils.CategoriaPorPreco(preco)
	if err != nil {
		return "", errs.BadRequest("categoria",
			fmt.Sprintf("Não foi possível definir a categoria para o preço %.2f. Informe a categoria.", preco))
	}
	return c, nil
}

func (s *ProdutoService) fornecedorExiste(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.Fornecedores.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errs.BadRequest("id_fornecedor", "Fornecedor não encontrado: "+id.Hex())
		}
		return err
	}
	return nil
}

func (s *ProdutoService) Create(ctx context.Context, p *models.Produto) (*models.Produto, error) {
	var err error
	if p.Categoria, err = categorizar(p.Categoria, p.Preco); err != nil {
		return nil, err
	}
	if err := s.fornecedorExiste(ctx, p.FornecedorID); err != nil {
		return nil, err
	}
	if err := s.Produtos.Create(ctx, p); err != nil {
		return nil, produtoErr(err)
	}
	s.publicar(ctx, broker.ProdutoCriado, p, "Produto cadastrado")
	return p, nil
}

func (s *ProdutoService) Get(ctx context.Context, id string) (*models.Produto, error) {
	oid, err := produtoID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.Produtos.GetByID(ctx, oid)
	if err != nil {
		return nil, produtoErr(err)
	}
	return p, nil
}

func (s *ProdutoService) List(ctx context.Context, f repository.ProdutoFiltro, page, limit int64) (models.Page[models.Produto], error) {
	if f.PrecoMin != nil && f.PrecoMax != nil && *f.PrecoMin > *f.PrecoMax {
		return models.Page[models.Produto]{}, errs.BadRequest("preco_min", "preco_min não pode ser maior que preco_max.")
	}
	return s.Produtos.List(ctx, f, page, limit)
}

func (s *ProdutoService) EstoqueBaixo(ctx context.Context, page, limit int64) (models.Page[models.Produto], error) {
	return s.Produtos.ListEstoqueBaixo(ctx, page, limit)
}

// Update aplica o patch. Preço alterado sem categoria informada recalcula a categoria.
func (s *ProdutoService) Update(ctx context.Context, id string, patch models.ProdutoPatch) (*models.Produto, error) {
	oid, err := produtoID(id)
	if err != nil {
		return nil, err
	}
	if patch.Categoria != nil || patch.Preco != nil {
		cat := ""
		if patch.Categoria != nil {
			cat = *patch.Categoria
		}
		if cat == "" && patch.Preco == nil {
			return nil, errs.BadRequest("categoria", "Categoria não pode ser vazia.")
		}
		var preco float64
		if patch.Preco != nil {
			preco = *patch.Preco
		}
		c, err := categorizar(cat, preco)
		if err != nil {
			return nil, err
		}
		patch.Categoria = &c
	}
	if patch.FornecedorID != nil {
		if err := s.fornecedorExiste(ctx, *patch.FornecedorID); err != nil {
			return nil, err
		}
	}
	p, err := s.Produtos.Update(ctx, oid, patch)
	if err != nil {
		return nil, produtoErr(err)
	}
	s.publicar(ctx, broker.ProdutoAtualizado, p, "Produto atualizado")
	return p, nil
}

func (s *ProdutoService) Replace(ctx context.Context, id string, p *models.Produto) (*models.Produto, error) {
	oid, err := produtoID(id)
	if err != nil {
		return nil, err
	}
	if p.Categoria, err = categorizar(p.Categoria, p.Preco); err != nil {
		return nil, err
	}
	if err := s.fornecedorExiste(ctx, p.FornecedorID); err != nil {
		return nil, err
	}
	out, err := s.Produtos.Replace(ctx, oid, p)
	if err != nil {
		return nil, produtoErr(err)
	}
	s.publicar(ctx, broker.ProdutoAtualizado, out, "Produto substituído")
	return out, nil
}

func (s *ProdutoService) Delete(ctx context.Context, id string) error {
	oid, err := produtoID(id)
	if err != nil {
		return err
	}
	if err := s.Produtos.Delete(ctx, oid); err != nil {
		return produtoErr(err)
	}
	publish(ctx, s.Pub, logger(s.Log), broker.NovoEvento(broker.ProdutoRemovido, "produto", oid.Hex(), "Produto removido", nil))
	return nil
}

func (s *ProdutoService) publicar(ctx context.Context, tipo string, p *models.Produto, msg string) {
	publish(ctx, s.Pub, logger(s.Log), broker.NovoEvento(tipo, "produto", p.ID.Hex(), msg, p))
}
