package handlers

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/models"
)

// PermissaoDTO: ativo vale true quando omitido; as ações, false.
type PermissaoDTO struct {
	Rota       string `json:"rota" validate:"required,max=50"`
	Dominio    string `json:"dominio" validate:"omitempty,max=100"`
	Ativo      *bool  `json:"ativo"`
	Buscar     bool   `json:"buscar"`
	Enviar     bool   `json:"enviar"`
	Substituir bool   `json:"substituir"`
	Modificar  bool   `json:"modificar"`
	Excluir    bool   `json:"excluir"`
}

func (d PermissaoDTO) toModel() models.Permissao {
	ativo := true
	if d.Ativo != nil {
		ativo = *d.Ativo
	}
	return models.Permissao{
		Rota:       d.Rota,
		Dominio:    d.Dominio,
		Ativo:      ativo,
		Buscar:     d.Buscar,
		Enviar:     d.Enviar,
		Substituir: d.Substituir,
		Modificar:  d.Modificar,
		Excluir:    d.Excluir,
	}
}

func permissoes(ds []PermissaoDTO) []models.Permissao {
	out := make([]models.Permissao, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.toModel())
	}
	return out
}

// ids já passaram pela validação objectid
func objectIDs(ss []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ss))
	for _, s := range ss {
		oid, _ := primitive.ObjectIDFromHex(s)
		out = append(out, oid)
	}
	return out
}

type UsuarioDTO struct {
	NomeUsuario string         `json:"nome_usuario" validate:"required,min=3,max=100"`
	Email       string         `json:"email" validate:"required,email"`
	Matricula   string         `json:"matricula" validate:"required,min=3,max=20,alphanum"`
	Senha       string         `json:"senha" validate:"required,senha_forte"`
	Perfil      string         `json:"perfil" validate:"required,oneof=administrador gerente estoquista"`
	Ativo       *bool          `json:"ativo"`
	Grupos      []string       `json:"grupos" validate:"omitempty,dive,objectid"`
	Permissoes  []PermissaoDTO `json:"permissoes" validate:"omitempty,max=50,dive"`
}

func (d UsuarioDTO) toModel() *models.Usuario {
	ativo := true
	if d.Ativo != nil {
		ativo = *d.Ativo
	}
	return &models.Usuario{
		NomeUsuario: d.NomeUsuario,
		Email:       d.Email,
		Matricula:   d.Matricula,
		Perfil:      d.Perfil,
		Ativo:       ativo,
		Grupos:      objectIDs(d.Grupos),
		Permissoes:  permissoes(d.Permissoes),
	}
}

type UsuarioPatchDTO struct {
	NomeUsuario *string         `json:"nome_usuario,omitempty" validate:"omitempty,min=3,max=100"`
	Email       *string         `json:"email,omitempty" validate:"omitempty,email"`
	Senha       *string         `json:"senha,omitempty" validate:"omitempty,senha_forte"`
	Perfil      *string         `json:"perfil,omitempty" validate:"omitempty,oneof=administrador gerente estoquista"`
	Ativo       *bool           `json:"ativo,omitempty"`
	Grupos      *[]string       `json:"grupos,omitempty" validate:"omitempty,dive,objectid"`
	Permissoes  *[]PermissaoDTO `json:"permissoes,omitempty" validate:"omitempty,max=50,dive"`
}

func (d UsuarioPatchDTO) vazio() bool {
	return d == UsuarioPatchDTO{}
}

func (d UsuarioPatchDTO) toPatch() models.UsuarioPatch {
	p := models.UsuarioPatch{
		NomeUsuario: d.NomeUsuario,
		Email:       d.Email,
		Perfil:      d.Perfil,
		Ativo:       d.Ativo,
	}
	if d.Grupos != nil {
		ids := objectIDs(*d.Grupos)
		p.Grupos = &ids
	}
	if d.Permissoes != nil {
		perms := permissoes(*d.Permissoes)
		p.Permissoes = &perms
	}
	return p
}
