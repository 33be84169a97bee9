package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PerfilAdministrador = "administrador"
	PerfilGerente       = "gerente"
	PerfilEstoquista    = "estoquista"
)

type Usuario struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	NomeUsuario string               `bson:"nome_usuario" json:"nome_usuario"`
	Email       string               `bson:"email" json:"email"`
	Matricula   string               `bson:"matricula" json:"matricula"`
	Perfil      string               `bson:"perfil" json:"perfil"`
	Ativo       bool                 `bson:"ativo" json:"ativo"`
	Grupos      []primitive.ObjectID `bson:"grupos" json:"grupos"`
	Permissoes  []Permissao          `bson:"permissoes" json:"permissoes"`

	// nunca saem no JSON
	SenhaHash            string     `bson:"senha" json:"-"`
	AccessToken          string     `bson:"accesstoken,omitempty" json:"-"`
	RefreshToken         string     `bson:"refreshtoken,omitempty" json:"-"`
	TokenRecuperacao     string     `bson:"token_recuperacao,omitempty" json:"-"`
	CodigoRecuperacao    string     `bson:"codigo_recuperacao,omitempty" json:"-"`
	ExpiracaoRecuperacao *time.Time `bson:"data_expiracao_codigo,omitempty" json:"-"`

	DataCadastro          time.Time `bson:"data_cadastro" json:"data_cadastro"`
	DataUltimaAtualizacao time.Time `bson:"data_ultima_atualizacao" json:"data_ultima_atualizacao"`
}

func (u *Usuario) Administrador() bool { return u.Perfil == PerfilAdministrador }

type UsuarioPatch struct {
	NomeUsuario *string
	Email       *string
	Perfil      *string
	Ativo       *bool
	Grupos      *[]primitive.ObjectID
	Permissoes  *[]Permissao
	SenhaHash   *string
}

func PerfilValido(p string) bool {
	switch p {
	case PerfilAdministrador, PerfilGerente, PerfilEstoquista:
		return true
	}
	return false
}
