package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Produto struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	NomeProduto           string             `bson:"nome_produto" json:"nome_produto"`
	Descricao             string             `bson:"descricao,omitempty" json:"descricao,omitempty"`
	Preco                 float64            `bson:"preco" json:"preco"`
	Marca                 string             `bson:"marca,omitempty" json:"marca,omitempty"`
	Custo                 float64            `bson:"custo" json:"custo"`
	Categoria             string             `bson:"categoria" json:"categoria"`
	Estoque               int                `bson:"estoque" json:"estoque"`
	EstoqueMin            int                `bson:"estoque_min" json:"estoque_min"`
	DataUltimaEntrada     *time.Time         `bson:"data_ultima_entrada,omitempty" json:"data_ultima_entrada,omitempty"`
	Status                bool               `bson:"status" json:"status"`
	FornecedorID          primitive.ObjectID `bson:"id_fornecedor" json:"id_fornecedor"`
	CodigoProduto         string             `bson:"codigo_produto" json:"codigo_produto"`
	DataCadastro          time.Time          `bson:"data_cadastro" json:"data_cadastro"`
	DataUltimaAtualizacao time.Time          `bson:"data_ultima_atualizacao" json:"data_ultima_atualizacao"`
}

// EstoqueBaixo indica produto no limite ou abaixo do estoque mínimo.
func (p *Produto) EstoqueBaixo() bool {
	return p.Estoque <= p.EstoqueMin
}

// ProdutoPatch: ponteiros distinguem "omitido" de "informado" (inclusive zero/false).
type ProdutoPatch struct {
	NomeProduto   *string
	Descricao     *string
	Preco         *float64
	Marca         *string
	Custo         *float64
	Categoria     *string
	Estoque       *int
	EstoqueMin    *int
	Status        *bool
	FornecedorID  *primitive.ObjectID
	CodigoProduto *string
}
