package broker

import (
	"time"

	"github.com/oklog/ulid/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Tipos de evento publicados na fila.
const (
	ProdutoCriado          = "produto.criado"
	ProdutoAtualizado      = "produto.atualizado"
	ProdutoRemovido        = "produto.removido"
	FornecedorCriado       = "fornecedor.criado"
	FornecedorAtualizado   = "fornecedor.atualizado"
	FornecedorRemovido     = "fornecedor.removido"
	MovimentacaoCriada     = "movimentacao.criada"
	MovimentacaoAtualizada = "movimentacao.atualizada"
	MovimentacaoRemovida   = "movimentacao.removida"
	EstoqueBaixo           = "estoque.baixo"
)

type Evento struct {
	ID         string    `json:"id"`
	Tipo       string    `json:"tipo"`
	Entidade   string    `json:"entidade"`
	EntidadeID string    `json:"entidade_id"`
	Mensagem   string    `json:"mensagem,omitempty"`
	Dados      any       `json:"dados,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func NovoEvento(tipo, entidade, entidadeID, mensagem string, dados any) Evento {
	return Evento{
		ID:         ulid.Make().String(),
		Tipo:       tipo,
		Entidade:   entidade,
		EntidadeID: entidadeID,
		Mensagem:   mensagem,
		Dados:      dados,
		Timestamp:  time.Now().UTC(),
	}
}

func (e Evento) Headers() amqp.Table {
	return amqp.Table{
		"tipo":        e.Tipo,
		"entidade":    e.Entidade,
		"entidade_id": e.EntidadeID,
	}
}
