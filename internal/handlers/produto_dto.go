package handlers

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/models"
)

// categoria é opcional: sem ela o service classifica pelo preço.
type ProdutoDTO struct {
	NomeProduto   string  `json:"nome_produto" validate:"required,min=3,max=100"`
	Descricao     string  `json:"descricao" validate:"max=500"`
	Preco         float64 `json:"preco" validate:"gt=0"`
	Marca         string  `json:"marca" validate:"max=100"`
	Custo         float64 `json:"custo" validate:"gt=0"`
	Categoria     string  `json:"categoria" validate:"omitempty,oneof=A B C a b c"`
	Estoque       int     `json:"estoque" validate:"gte=0"`
	EstoqueMin    int     `json:"estoque_min" validate:"gte=0"`
	Status        *bool   `json:"status"`
	FornecedorID  string  `json:"id_fornecedor" validate:"required,objectid"`
	CodigoProduto string  `json:"codigo_produto" validate:"required,min=3,max=50"`
}

func (d ProdutoDTO) toModel() *models.Produto {
	fid, _ := primitive.ObjectIDFromHex(d.FornecedorID)
	status := true
	if d.Status != nil {
		status = *d.Status
	}
	return &models.Produto{
		NomeProduto:   d.NomeProduto,
		Descricao:     d.Descricao,
		Preco:         d.Preco,
		Marca:         d.Marca,
		Custo:         d.Custo,
		Categoria:     d.Categoria,
		Estoque:       d.Estoque,
		EstoqueMin:    d.EstoqueMin,
		Status:        status,
		FornecedorID:  fid,
		CodigoProduto: d.CodigoProduto,
	}
}

// Update parcial; ponteiros distinguem "omitido" de "informado".
type ProdutoPatchDTO struct {
	NomeProduto   *string  `json:"nome_produto,omitempty" validate:"omitempty,min=3,max=100"`
	Descricao     *string  `json:"descricao,omitempty" validate:"omitempty,max=500"`
	Preco         *float64 `json:"preco,omitempty" validate:"omitempty,gt=0"`
	Marca         *string  `json:"marca,omitempty" validate:"omitempty,max=100"`
	Custo         *float64 `json:"custo,omitempty" validate:"omitempty,gt=0"`
	Categoria     *string  `json:"categoria,omitempty" validate:"omitempty,oneof=A B C a b c"`
	Estoque       *int     `json:"estoque,omitempty" validate:"omitempty,gte=0"`
	EstoqueMin    *int     `json:"estoque_min,omitempty" validate:"omitempty,gte=0"`
	Status        *bool    `json:"status,omitempty"`
	FornecedorID  *string  `json:"id_fornecedor,omitempty" validate:"omitempty,objectid"`
	CodigoProduto *string  `json:"codigo_produto,omitempty" validate:"omitempty,min=3,max=50"`
}

func (d ProdutoPatchDTO) vazio() bool {
	return d == ProdutoPatchDTO{}
}

func (d ProdutoPatchDTO) toPatch() models.ProdutoPatch {
	p := models.ProdutoPatch{
		NomeProduto:   d.NomeProduto,
		Descricao:     d.Descricao,
		Preco:         d.Preco,
		Marca:         d.Marca,
		Custo:         d.Custo,
		Categoria:     d.Categoria,
		Estoque:       d.Estoque,
		EstoqueMin:    d.EstoqueMin,
		Status:        d.Status,
		CodigoProduto: d.CodigoProduto,
	}
	if d.FornecedorID != nil {
		fid, _ := primitive.ObjectIDFromHex(*d.FornecedorID)
		p.FornecedorID = &fid
	}
	return p
}
