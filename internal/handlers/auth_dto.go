package handlers

import "github.com/Werneck0live/estoque-automotivo/internal/models"

type LoginDTO struct {
	Matricula string `json:"matricula" validate:"required"`
	Senha     string `json:"senha" validate:"required"`
}

// TokenDTO serve logout, refresh e introspect.
type TokenDTO struct {
	Token        string `json:"token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RevokeDTO struct {
	Matricula string `json:"matricula" validate:"required"`
}

type RecoverDTO struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetTokenDTO struct {
	Senha string `json:"senha" validate:"required,senha_forte"`
}

type ResetCodeDTO struct {
	Email  string `json:"email" validate:"required,email"`
	Codigo string `json:"codigo" validate:"required,len=6,numeric"`
	Senha  string `json:"senha" validate:"required,senha_forte"`
}

// SignupDTO é o cadastro público: perfil e grupos não são escolhidos pelo usuário.
type SignupDTO struct {
	NomeUsuario string `json:"nome_usuario" validate:"required,min=3,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Matricula   string `json:"matricula" validate:"required,min=3,max=20,alphanum"`
	Senha       string `json:"senha" validate:"required,senha_forte"`
}

func (d SignupDTO) toModel() *models.Usuario {
	return &models.Usuario{NomeUsuario: d.NomeUsuario, Email: d.Email, Matricula: d.Matricula}
}
