package handlers

import "github.com/Werneck0live/estoque-automotivo/internal/models"

type GrupoDTO struct {
	Nome       string         `json:"nome" validate:"required,min=2,max=100,nome_grupo"`
	Descricao  string         `json:"descricao" validate:"required,min=5,max=500"`
	Ativo      *bool          `json:"ativo"`
	Permissoes []PermissaoDTO `json:"permissoes" validate:"omitempty,max=50,dive"`
}

func (d GrupoDTO) toModel() *models.Grupo {
	ativo := true
	if d.Ativo != nil {
		ativo = *d.Ativo
	}
	return &models.Grupo{
		Nome:       d.Nome,
		Descricao:  d.Descricao,
		Ativo:      ativo,
		Permissoes: permissoes(d.Permissoes),
	}
}

type GrupoPatchDTO struct {
	Nome       *string         `json:"nome,omitempty" validate:"omitempty,min=2,max=100,nome_grupo"`
	Descricao  *string         `json:"descricao,omitempty" validate:"omitempty,min=5,max=500"`
	Ativo      *bool           `json:"ativo,omitempty"`
	Permissoes *[]PermissaoDTO `json:"permissoes,omitempty" validate:"omitempty,max=50,dive"`
}

func (d GrupoPatchDTO) vazio() bool {
	return d == GrupoPatchDTO{}
}

func (d GrupoPatchDTO) toPatch() models.GrupoPatch {
	p := models.GrupoPatch{Nome: d.Nome, Descricao: d.Descricao, Ativo: d.Ativo}
	if d.Permissoes != nil {
		perms := permissoes(*d.Permissoes)
		p.Permissoes = &perms
	}
	return p
}

// RemoverPermissaoDTO identifica a permissão pelo par rota+dominio.
type RemoverPermissaoDTO struct {
	Rota    string `json:"rota" validate:"required"`
	Dominio string `json:"dominio"`
}
