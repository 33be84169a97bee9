package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Endereco struct {
	Logradouro string `bson:"logradouro" json:"logradouro" validate:"required"`
	Bairro     string `bson:"bairro" json:"bairro" validate:"required"`
	Cidade     string `bson:"cidade" json:"cidade" validate:"required"`
	Estado     string `bson:"estado" json:"estado" validate:"required,len=2"`
	CEP        string `bson:"cep" json:"cep" validate:"required"`
}

type Fornecedor struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	NomeFornecedor        string             `bson:"nome_fornecedor" json:"nome_fornecedor"`
	CNPJ                  string             `bson:"cnpj" json:"cnpj"` // apenas dígitos
	Telefone              string             `bson:"telefone" json:"telefone"`
	Email                 string             `bson:"email" json:"email"`
	Endereco              []Endereco         `bson:"endereco" json:"endereco"`
	DataCadastro          time.Time          `bson:"data_cadastro" json:"data_cadastro"`
	DataUltimaAtualizacao time.Time          `bson:"data_ultima_atualizacao" json:"data_ultima_atualizacao"`
}

type FornecedorPatch struct {
	NomeFornecedor *string
	CNPJ           *string
	Telefone       *string
	Email          *string
	Endereco       []Endereco
}
