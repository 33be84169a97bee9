package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Werneck0live/estoque-automotivo/internal/broker"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
)

func novoFornecedor() *models.Fornecedor {
	return &models.Fornecedor{
		NomeFornecedor: "Distribuidora Norte",
		CNPJ:           "11.222.333/0001-81",
		Email:          "contato@norte.com",
		Endereco:       []models.Endereco{{Logradouro: "Rua A, 10", Bairro: "Centro", Cidade: "Manaus", Estado: "AM", CEP: "69000-000"}},
	}
}

func TestFornecedor_Create_SanitizaCNPJ(t *testing.T) {
	pub := &fakePub{}
	svc := &FornecedorService{Fornecedores: newFakeFornecedores(), Pub: pub}

	out, err := svc.Create(context.Background(), novoFornecedor())
	require.NoError(t, err)
	assert.Equal(t, "11222333000181", out.CNPJ)
	assert.Equal(t, []string{broker.FornecedorCriado}, pub.tipos())

	_, err = svc.Create(context.Background(), novoFornecedor())
	requireStatus(t, err, http.StatusConflict)
}

func TestFornecedor_Create_Invalido(t *testing.T) {
	svc := &FornecedorService{Fornecedores: newFakeFornecedores()}

	f := novoFornecedor()
	f.CNPJ = "11.222.333/0001-82"
	_, err := svc.Create(context.Background(), f)
	requireStatus(t, err, http.StatusBadRequest)

	f = novoFornecedor()
	f.Endereco = nil
	_, err = svc.Create(context.Background(), f)
	requireStatus(t, err, http.StatusBadRequest)
}

func TestFornecedor_Delete_ComProdutos(t *testing.T) {
	fakes := newFakeFornecedores()
	svc := &FornecedorService{Fornecedores: fakes, Produtos: fakes}
	ctx := context.Background()
	f, err := svc.Create(ctx, novoFornecedor())
	require.NoError(t, err)

	fakes.vinculos[f.ID] = 2
	requireStatus(t, svc.Delete(ctx, f.ID.Hex()), http.StatusConflict)

	fakes.vinculos[f.ID] = 0
	require.NoError(t, svc.Delete(ctx, f.ID.Hex()))
	requireStatus(t, svc.Delete(ctx, f.ID.Hex()), http.StatusNotFound)
}

func TestFornecedor_Update(t *testing.T) {
	svc := &FornecedorService{Fornecedores: newFakeFornecedores()}
	ctx := context.Background()
	f, err := svc.Create(ctx, novoFornecedor())
	require.NoError(t, err)

	ruim := "123"
	_, err = svc.Update(ctx, f.ID.Hex(), models.FornecedorPatch{CNPJ: &ruim})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.Update(ctx, f.ID.Hex(), models.FornecedorPatch{Endereco: []models.Endereco{}})
	requireStatus(t, err, http.StatusBadRequest)

	outro := "11.444.777/0001-61"
	out, err := svc.Update(ctx, f.ID.Hex(), models.FornecedorPatch{CNPJ: &outro})
	require.NoError(t, err)
	assert.Equal(t, "11444777000161", out.CNPJ)
}
