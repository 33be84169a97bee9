package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/auth"
	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
)

type UsuarioStore interface {
	Create(ctx context.Context, u *models.Usuario) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Usuario, error)
	GetByMatricula(ctx context.Context, matricula string) (*models.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*models.Usuario, error)
	GetByTokenRecuperacao(ctx context.Context, token string) (*models.Usuario, error)
	List(ctx context.Context, f repository.UsuarioFiltro, page, limit int64) (models.Page[models.Usuario], error)
	Update(ctx context.Context, id primitive.ObjectID, p models.UsuarioPatch) (*models.Usuario, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetTokens(ctx context.Context, id primitive.ObjectID, access, refresh string) error
	ClearTokens(ctx context.Context, id primitive.ObjectID) error
	SetRecuperacao(ctx context.Context, id primitive.ObjectID, token, codigo string, expira time.Time) error
	RedefinirSenha(ctx context.Context, id primitive.ObjectID, hash string) error
}

type GrupoLister interface {
	GetMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Grupo, error)
}

type UsuarioService struct {
	Usuarios UsuarioStore
	Grupos   GrupoLister
}

var errSenhaFraca = errs.BadRequest("senha",
	"A senha deve ter no mínimo 8 caracteres, incluindo letra maiúscula, letra minúscula e número.")

func (s *UsuarioService) Create(ctx context.Context, u *models.Usuario, senha string) (*models.Usuario, error) {
	if !models.PerfilValido(u.Perfil) {
		return nil, errs.BadRequest("perfil", "Perfil inválido. Use administrador, gerente ou estoquista.")
	}
	if !auth.SenhaForte(senha) {
		return nil, errSenhaFraca
	}
	if err := s.checarGrupos(ctx, u.Grupos); err != nil {
		return nil, err
	}
	if err := normalizarPermissoes(u.Permissoes); err != nil {
		return nil, err
	}
	hash, err := auth.HashSenha(senha)
	if err != nil {
		return nil, err
	}
	u.SenhaHash = hash
	if err := s.Usuarios.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.Conflict("matricula", "Matrícula ou e-mail já cadastrado.")
		}
		return nil, err
	}
	return u, nil
}

func (s *UsuarioService) List(ctx context.Context, f repository.UsuarioFiltro, page, limit int64) (models.Page[models.Usuario], error) {
	return s.Usuarios.List(ctx, f, page, limit)
}

func (s *UsuarioService) Buscar(ctx context.Context, nome string, page, limit int64) (models.Page[models.Usuario], error) {
	if nome == "" {
		return models.Page[models.Usuario]{}, errs.BadRequest("nome", "Informe o nome para busca.")
	}
	return s.Usuarios.List(ctx, repository.UsuarioFiltro{NomeUsuario: nome}, page, limit)
}

func (s *UsuarioService) Get(ctx context.Context, matricula string) (*models.Usuario, error) {
	u, err := s.Usuarios.GetByMatricula(ctx, matricula)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NotFound("matricula", "Usuário não encontrado.")
		}
		return nil, err
	}
	return u, nil
}

// Update aplica o patch; senha, quando informada, é validada e re-hasheada.
func (s *UsuarioService) Update(ctx context.Context, matricula string, p models.UsuarioPatch, senha *string) (*models.Usuario, error) {
	u, err := s.Get(ctx, matricula)
	if err != nil {
		return nil, err
	}
	if p.Perfil != nil && !models.PerfilValido(*p.Perfil) {
		return nil, errs.BadRequest("perfil", "Perfil inválido. Use administrador, gerente ou estoquista.")
	}
	if p.Grupos != nil {
		if err := s.checarGrupos(ctx, *p.Grupos); err != nil {
			return nil, err
		}
	}
	if p.Permissoes != nil {
		if err := normalizarPermissoes(*p.Permissoes); err != nil {
			return nil, err
		}
	}
	if senha != nil {
		if !auth.SenhaForte(*senha) {
			return nil, errSenhaFraca
		}
		hash, err := auth.HashSenha(*senha)
		if err != nil {
			return nil, err
		}
		p.SenhaHash = &hash
	}
	out, err := s.Usuarios.Update(ctx, u.ID, p)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.Conflict("email", "E-mail já cadastrado.")
		}
		return nil, err
	}
	if p.Ativo != nil && !*p.Ativo {
		// usuário desativado perde as sessões
		_ = s.Usuarios.ClearTokens(ctx, u.ID)
	}
	return out, nil
}

func (s *UsuarioService) Delete(ctx context.Context, matricula string) error {
	u, err := s.Get(ctx, matricula)
	if err != nil {
		return err
	}
	return s.Usuarios.Delete(ctx, u.ID)
}

func (s *UsuarioService) checarGrupos(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.Grupos.GetMany(ctx, ids)
	if err != nil {
		return err
	}
	existe := make(map[primitive.ObjectID]bool, len(found))
	for _, g := range found {
		existe[g.ID] = true
	}
	var det []errs.FieldError
	for _, id := range ids {
		if !existe[id] {
			det = append(det, errs.FieldError{Field: "grupos", Message: "Grupo não encontrado: " + id.Hex()})
		}
	}
	if len(det) > 0 {
		return errs.Validation(det)
	}
	return nil
}
