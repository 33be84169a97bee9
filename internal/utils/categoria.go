package utils

import "errors"

var ErrPrecoForaDaFaixa = errors.New("preço fora das faixas de categorização")

// CategoriaPorPreco classifica o produto pela faixa de preço de venda.
// Faixas: 0–499,99 -> C; 500–1000 -> B; 1001–10000 -> A. Preços fora das
// faixas (inclusive entre 1000 e 1001) não têm categoria.
func CategoriaPorPreco(preco float64) (string, error) {
	switch {
	case preco < 0:
		return "", ErrPrecoForaDaFaixa
	case preco < 500:
		return "C", nil
	case preco <= 1000:
		return "B", nil
	case preco >= 1001 && preco <= 10000:
		return "A", nil
	default:
		return "", ErrPrecoForaDaFaixa
	}
}

func DescricaoCategoria(c string) string {
	switch c {
	case "A":
		return "Alta (R$ 1.001,00 - R$ 10.000,00)"
	case "B":
		return "Média (R$ 500,00 - R$ 1.000,00)"
	case "C":
		return "Baixa (R$ 0,00 - R$ 499,00)"
	default:
		return "Categoria inválida"
	}
}
