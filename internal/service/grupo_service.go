package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
)

// Rotas que aceitam permissão.
var Rotas = []string{"produtos", "fornecedores", "usuarios", "grupos", "movimentacoes", "logs"}

const MaxPermissoes = 50

var rotaRe = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

type GrupoStore interface {
	Create(ctx context.Context, g *models.Grupo) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Grupo, error)
	GetByNome(ctx context.Context, nome string, excludeID *primitive.ObjectID) (*models.Grupo, error)
	List(ctx context.Context, f repository.GrupoFiltro, page, limit int64) (models.Page[models.Grupo], error)
	Update(ctx context.Context, id primitive.ObjectID, p models.GrupoPatch) (*models.Grupo, error)
	SetAtivo(ctx context.Context, id primitive.ObjectID, ativo bool) (*models.Grupo, error)
	AddPermissao(ctx context.Context, id primitive.ObjectID, p models.Permissao) (*models.Grupo, error)
	RemovePermissao(ctx context.Context, id primitive.ObjectID, rota, dominio string) (*models.Grupo, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type GrupoRemover interface {
	RemoveGrupo(ctx context.Context, grupoID primitive.ObjectID) (int64, error)
}

type GrupoService struct {
	Grupos   GrupoStore
	Usuarios GrupoRemover
}

// normalizarPermissoes aplica os defaults e valida rota, limite e duplicidade.
func normalizarPermissoes(perms []models.Permissao) error {
	if len(perms) > MaxPermissoes {
		return errs.BadRequest("permissoes", fmt.Sprintf("Um grupo pode ter no máximo %d permissões.", MaxPermissoes))
	}
	var det []errs.FieldError
	vistas := map[string]bool{}
	for i := range perms {
		perms[i].Normalizar()
		p := perms[i]
		campo := fmt.Sprintf("permissoes[%d].rota", i)
		switch {
		case !rotaRe.MatchString(p.Rota):
			det = append(det, errs.FieldError{Field: campo, Message: "Rota inválida: " + p.Rota})
		case !slices.Contains(Rotas, p.Rota):
			det = append(det, errs.FieldError{Field: campo, Message: "Rota não cadastrada: " + p.Rota})
		case vistas[p.Chave()]:
			det = append(det, errs.FieldError{Field: campo, Message: "Permissão duplicada para rota e domínio: " + p.Rota + " " + p.Dominio})
		}
		vistas[p.Chave()] = true
	}
	if len(det) > 0 {
		return errs.Validation(det)
	}
	return nil
}

func grupoID(id string) (primitive.ObjectID, error) {
	oid, err := repository.ObjectID(id)
	if err != nil {
		return oid, errs.BadRequest("id", "ID do grupo inválido.")
	}
	return oid, nil
}

func grupoNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errs.NotFound("id", "Grupo não encontrado.")
	}
	return err
}

func (s *GrupoService) Create(ctx context.Context, g *models.Grupo) (*models.Grupo, error) {
	if err := normalizarPermissoes(g.Permissoes); err != nil {
		return nil, err
	}
	if err := s.nomeLivre(ctx, g.Nome, nil); err != nil {
		return nil, err
	}
	if err := s.Grupos.Create(ctx, g); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.Conflict("nome", "Já existe um grupo com este nome.")
		}
		return nil, err
	}
	return g, nil
}

func (s *GrupoService) Get(ctx context.Context, id string) (*models.Grupo, error) {
	oid, err := grupoID(id)
	if err != nil {
		return nil, err
	}
	g, err := s.Grupos.GetByID(ctx, oid)
	if err != nil {
		return nil, grupoNotFound(err)
	}
	return g, nil
}

func (s *GrupoService) List(ctx context.Context, f repository.GrupoFiltro, page, limit int64) (models.Page[models.Grupo], error) {
	return s.Grupos.List(ctx, f, page, limit)
}

func (s *GrupoService) Update(ctx context.Context, id string, p models.GrupoPatch) (*models.Grupo, error) {
	oid, err := grupoID(id)
	if err != nil {
		return nil, err
	}
	if p.Permissoes != nil {
		if err := normalizarPermissoes(*p.Permissoes); err != nil {
			return nil, err
		}
	}
	if p.Nome != nil {
		if err := s.nomeLivre(ctx, *p.Nome, &oid); err != nil {
			return nil, err
		}
	}
	g, err := s.Grupos.Update(ctx, oid, p)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.Conflict("nome", "Já existe um grupo com este nome.")
		}
		return nil, grupoNotFound(err)
	}
	return g, nil
}

// Delete remove o grupo e o desvincula dos usuários.
func (s *GrupoService) Delete(ctx context.Context, id string) error {
	oid, err := grupoID(id)
	if err != nil {
		return err
	}
	if err := s.Grupos.Delete(ctx, oid); err != nil {
		return grupoNotFound(err)
	}
	_, err = s.Usuarios.RemoveGrupo(ctx, oid)
	return err
}

func (s *GrupoService) SetAtivo(ctx context.Context, id string, ativo bool) (*models.Grupo, error) {
	oid, err := grupoID(id)
	if err != nil {
		return nil, err
	}
	g, err := s.Grupos.SetAtivo(ctx, oid, ativo)
	if err != nil {
		return nil, grupoNotFound(err)
	}
	return g, nil
}

func (s *GrupoService) AddPermissao(ctx context.Context, id string, p models.Permissao) (*models.Grupo, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	perms := append(slices.Clone(g.Permissoes), p)
	if err := normalizarPermissoes(perms); err != nil {
		return nil, err
	}
	return s.Grupos.AddPermissao(ctx, g.ID, perms[len(perms)-1])
}

func (s *GrupoService) RemovePermissao(ctx context.Context, id, rota, dominio string) (*models.Grupo, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	alvo := models.Permissao{Rota: rota, Dominio: dominio}
	alvo.Normalizar()
	idx := slices.IndexFunc(g.Permissoes, func(p models.Permissao) bool { return p.Chave() == alvo.Chave() })
	if idx < 0 {
		return nil, errs.NotFound("rota", "Permissão não encontrada no grupo.")
	}
	return s.Grupos.RemovePermissao(ctx, g.ID, alvo.Rota, alvo.Dominio)
}

func (s *GrupoService) nomeLivre(ctx context.Context, nome string, excludeID *primitive.ObjectID) error {
	_, err := s.Grupos.GetByNome(ctx, nome, excludeID)
	switch {
	case err == nil:
		return errs.Conflict("nome", "Já existe um grupo com este nome.")
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return err
	}
}
