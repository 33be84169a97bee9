package handlers

import "github.com/Werneck0live/estoque-automotivo/internal/models"

type FornecedorDTO struct {
	NomeFornecedor string            `json:"nome_fornecedor" validate:"required,min=3,max=100"`
	CNPJ           string            `json:"cnpj" validate:"required,cnpj"`
	Telefone       string            `json:"telefone" validate:"required,min=8,max=20"`
	Email          string            `json:"email" validate:"required,email"`
	Endereco       []models.Endereco `json:"endereco" validate:"required,min=1,dive"`
}

func (d FornecedorDTO) toModel() *models.Fornecedor {
	return &models.Fornecedor{
		NomeFornecedor: d.NomeFornecedor,
		CNPJ:           d.CNPJ,
		Telefone:       d.Telefone,
		Email:          d.Email,
		Endereco:       d.Endereco,
	}
}

type FornecedorPatchDTO struct {
	NomeFornecedor *string           `json:"nome_fornecedor,omitempty" validate:"omitempty,min=3,max=100"`
	CNPJ           *string           `json:"cnpj,omitempty" validate:"omitempty,cnpj"`
	Telefone       *string           `json:"telefone,omitempty" validate:"omitempty,min=8,max=20"`
	Email          *string           `json:"email,omitempty" validate:"omitempty,email"`
	Endereco       []models.Endereco `json:"endereco,omitempty" validate:"omitempty,min=1,dive"`
}

func (d FornecedorPatchDTO) vazio() bool {
	return d.NomeFornecedor == nil && d.CNPJ == nil && d.Telefone == nil && d.Email == nil && d.Endereco == nil
}

func (d FornecedorPatchDTO) toPatch() models.FornecedorPatch {
	return models.FornecedorPatch{
		NomeFornecedor: d.NomeFornecedor,
		CNPJ:           d.CNPJ,
		Telefone:       d.Telefone,
		Email:          d.Email,
		Endereco:       d.Endereco,
	}
}
