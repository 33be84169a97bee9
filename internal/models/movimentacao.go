package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TipoEntrada = "entrada"
	TipoSaida   = "saida"
)

type ItemMovimentacao struct {
	ProdutoRef         primitive.ObjectID `bson:"produto_ref" json:"produto_ref"`
	CodigoProduto      string             `bson:"codigo_produto" json:"codigo_produto"`
	NomeProduto        string             `bson:"nome_produto" json:"nome_produto"`
	QuantidadeProdutos int                `bson:"quantidade_produtos" json:"quantidade_produtos"`
	Preco              float64            `bson:"preco" json:"preco"`
	Custo              float64            `bson:"custo" json:"custo"`
	FornecedorID       primitive.ObjectID `bson:"id_fornecedor,omitempty" json:"id_fornecedor,omitempty"`
	NomeFornecedor     string             `bson:"nome_fornecedor,omitempty" json:"nome_fornecedor,omitempty"`
}

type Movimentacao struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Tipo                  string             `bson:"tipo" json:"tipo"`
	Destino               string             `bson:"destino" json:"destino"`
	DataMovimentacao      time.Time          `bson:"data_movimentacao" json:"data_movimentacao"`
	UsuarioID             primitive.ObjectID `bson:"id_usuario,omitempty" json:"id_usuario,omitempty"`
	NomeUsuario           string             `bson:"nome_usuario" json:"nome_usuario"`
	Produtos              []ItemMovimentacao `bson:"produtos" json:"produtos"`
	DataCadastro          time.Time          `bson:"data_cadastro" json:"data_cadastro"`
	DataUltimaAtualizacao time.Time          `bson:"data_ultima_atualizacao" json:"data_ultima_atualizacao"`
}

func TipoMovimentacaoValido(t string) bool {
	return t == TipoEntrada || t == TipoSaida
}

// MovimentacaoPatch: campos ausentes ficam nil.
type MovimentacaoPatch struct {
	Tipo             *string
	Destino          *string
	DataMovimentacao *time.Time
	UsuarioID        *primitive.ObjectID
	NomeUsuario      *string
	Produtos         []ItemMovimentacao
}

// AlteraEstoque indica se o patch mexe em quantidades (produtos ou tipo).
func (p MovimentacaoPatch) AlteraEstoque() bool {
	return p.Produtos != nil || p.Tipo != nil
}

func (p MovimentacaoPatch) Vazio() bool {
	return p.Tipo == nil && p.Destino == nil && p.DataMovimentacao == nil &&
		p.UsuarioID == nil && p.NomeUsuario == nil && p.Produtos == nil
}
