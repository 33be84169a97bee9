package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/broker"
	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

type FornecedorStore interface {
	Create(ctx context.Context, f *models.Fornecedor) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Fornecedor, error)
	List(ctx context.Context, f repository.FornecedorFiltro, page, limit int64) (models.Page[models.Fornecedor], error)
	Update(ctx context.Context, id primitive.ObjectID, p models.FornecedorPatch) (*models.Fornecedor, error)
	Replace(ctx context.Context, id primitive.ObjectID, f *models.Fornecedor) (*models.Fornecedor, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProdutoCounter diz quantos produtos referenciam um fornecedor.
type ProdutoCounter interface {
	CountByFornecedor(ctx context.Context, fornecedorID primitive.ObjectID) (int64, error)
}

type FornecedorService struct {
	Fornecedores FornecedorStore
	Produtos     ProdutoCounter
	Pub          EventPublisher
	Log          *slog.Logger
}

func fornecedorID(id string) (primitive.ObjectID, error) {
	oid, err := repository.ObjectID(id)
	if err != nil {
		return oid, errs.BadRequest("id", "ID do fornecedor inválido.")
	}
	return oid, nil
}

func fornecedorErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errs.NotFound("id", "Fornecedor não encontrado.")
	case errors.Is(err, repository.ErrDuplicate):
		return errs.Conflict("cnpj", "Já existe um fornecedor com este CNPJ.")
	}
	return err
}

func cnpjValido(cnpj string) (string, error) {
	c := utils.SanitizeCNPJ(cnpj)
	if !utils.ValidateCNPJ(c) {
		return "", errs.BadRequest("cnpj", "CNPJ inválido.")
	}
	return c, nil
}

func (s *FornecedorService) Create(ctx context.Context, f *models.Fornecedor) (*models.Fornecedor, error) {
	var err error
	if f.CNPJ, err = cnpjValido(f.CNPJ); err != nil {
		return nil, err
	}
	if len(f.Endereco) == 0 {
		return nil, errs.BadRequest("endereco", "Informe pelo menos um endereço.")
	}
	if err := s.Fornecedores.Create(ctx, f); err != nil {
		return nil, fornecedorErr(err)
	}
	s.publicar(ctx, broker.FornecedorCriado, f, "Fornecedor cadastrado")
	return f, nil
}

func (s *FornecedorService) Get(ctx context.Context, id string) (*models.Fornecedor, error) {
	oid, err := fornecedorID(id)
	if err != nil {
		return nil, err
	}
	f, err := s.Fornecedores.GetByID(ctx, oid)
	if err != nil {
		return nil, fornecedorErr(err)
	}
	return f, nil
}

func (s *FornecedorService) List(ctx context.Context, f repository.FornecedorFiltro, page, limit int64) (models.Page[models.Fornecedor], error) {
	if f.CNPJ != "" {
		f.CNPJ = utils.SanitizeCNPJ(f.CNPJ)
	}
	return s.Fornecedores.List(ctx, f, page, limit)
}

func (s *FornecedorService) Update(ctx context.Context, id string, p models.FornecedorPatch) (*models.Fornecedor, error) {
	oid, err := fornecedorID(id)
	if err != nil {
		return nil, err
	}
	if p.CNPJ != nil {
		c, err := cnpjValido(*p.CNPJ)
		if err != nil {
			return nil, err
		}
		p.CNPJ = &c
	}
	if p.Endereco != nil && len(p.Endereco) == 0 {
		return nil, errs.BadRequest("endereco", "Informe pelo menos um endereço.")
	}
	f, err := s.Fornecedores.Update(ctx, oid, p)
	if err != nil {
		return nil, fornecedorErr(err)
	}
	s.publicar(ctx, broker.FornecedorAtualizado, f, "Fornecedor atualizado")
	return f, nil
}

func (s *FornecedorService) Replace(ctx context.Context, id string, f *models.Fornecedor) (*models.Fornecedor, error) {
	oid, err := fornecedorID(id)
	if err != nil {
		return nil, err
	}
	if f.CNPJ, err = cnpjValido(f.CNPJ); err != nil {
		return nil, err
	}
	if len(f.Endereco) == 0 {
		return nil, errs.BadRequest("endereco", "Informe pelo menos um endereço.")
	}
	out, err := s.Fornecedores.Replace(ctx, oid, f)
	if err != nil {
		return nil, fornecedorErr(err)
	}
	s.publicar(ctx, broker.FornecedorAtualizado, out, "Fornecedor substituído")
	return out, nil
}

// Delete recusa fornecedor ainda referenciado por produtos.
func (s *FornecedorService) Delete(ctx context.Context, id string) error {
	oid, err := fornecedorID(id)
	if err != nil {
		return err
	}
	n, err := s.Produtos.CountByFornecedor(ctx, oid)
	if err != nil {
		return err
	}
	if n > 0 {
		return errs.Conflict("id", fmt.Sprintf("Fornecedor possui %d produto(s) vinculado(s) e não pode ser removido.", n))
	}
	if err := s.Fornecedores.Delete(ctx, oid); err != nil {
		return fornecedorErr(err)
	}
	publish(ctx, s.Pub, logger(s.Log), broker.NovoEvento(broker.FornecedorRemovido, "fornecedor", oid.Hex(), "Fornecedor removido", nil))
	return nil
}

func (s *FornecedorService) publicar(ctx context.Context, tipo string, f *models.Fornecedor, msg string) {
	publish(ctx, s.Pub, logger(s.Log), broker.NovoEvento(tipo, "fornecedor", f.ID.Hex(), msg, f))
}
