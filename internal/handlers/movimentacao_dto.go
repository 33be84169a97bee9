package handlers

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/models"
)

type ItemMovimentacaoDTO struct {
	ProdutoRef         string   `json:"produto_ref" validate:"required,objectid"`
	QuantidadeProdutos int      `json:"quantidade_produtos" validate:"gt=0"`
	CodigoProduto      string   `json:"codigo_produto" validate:"omitempty,max=50"`
	NomeProduto        string   `json:"nome_produto" validate:"omitempty,max=100"`
	Preco              *float64 `json:"preco" validate:"omitempty,gt=0"`
	Custo              *float64 `json:"custo" validate:"omitempty,gt=0"`
	FornecedorID       string   `json:"id_fornecedor" validate:"omitempty,objectid"`
	NomeFornecedor     string   `json:"nome_fornecedor" validate:"omitempty,max=100"`
}

func (d ItemMovimentacaoDTO) toModel() models.ItemMovimentacao {
	ref, _ := primitive.ObjectIDFromHex(d.ProdutoRef)
	it := models.ItemMovimentacao{
		ProdutoRef:         ref,
		QuantidadeProdutos: d.QuantidadeProdutos,
		CodigoProduto:      d.CodigoProduto,
		NomeProduto:        d.NomeProduto,
		NomeFornecedor:     d.NomeFornecedor,
	}
	if d.Preco != nil {
		it.Preco = *d.Preco
	}
	if d.Custo != nil {
		it.Custo = *d.Custo
	}
	if d.FornecedorID != "" {
		it.FornecedorID, _ = primitive.ObjectIDFromHex(d.FornecedorID)
	}
	return it
}

func itens(ds []ItemMovimentacaoDTO) []models.ItemMovimentacao {
	out := make([]models.ItemMovimentacao, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.toModel())
	}
	return out
}

// MovimentacaoDTO: usuário vem do token, não do corpo.
type MovimentacaoDTO struct {
	Tipo             string                `json:"tipo" validate:"required,oneof=entrada saida"`
	Destino          string                `json:"destino" validate:"required,min=3,max=100"`
	DataMovimentacao *time.Time            `json:"data_movimentacao"`
	Produtos         []ItemMovimentacaoDTO `json:"produtos" validate:"required,min=1,dive"`
}

func (d MovimentacaoDTO) toModel() *models.Movimentacao {
	m := &models.Movimentacao{
		Tipo:     d.Tipo,
		Destino:  d.Destino,
		Produtos: itens(d.Produtos),
	}
	if d.DataMovimentacao != nil {
		m.DataMovimentacao = *d.DataMovimentacao
	}
	return m
}

type MovimentacaoPatchDTO struct {
	Tipo             *string               `json:"tipo,omitempty" validate:"omitempty,oneof=entrada saida"`
	Destino          *string               `json:"destino,omitempty" validate:"omitempty,min=3,max=100"`
	DataMovimentacao *time.Time            `json:"data_movimentacao,omitempty"`
	Produtos         []ItemMovimentacaoDTO `json:"produtos,omitempty" validate:"omitempty,min=1,dive"`
}

func (d MovimentacaoPatchDTO) vazio() bool {
	return d.Tipo == nil && d.Destino == nil && d.DataMovimentacao == nil && d.Produtos == nil
}

func (d MovimentacaoPatchDTO) toPatch() models.MovimentacaoPatch {
	p := models.MovimentacaoPatch{
		Tipo:             d.Tipo,
		Destino:          d.Destino,
		DataMovimentacao: d.DataMovimentacao,
	}
	if d.Produtos != nil {
		p.Produtos = itens(d.Produtos)
	}
	return p
}
