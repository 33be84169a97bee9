// Package service concentra as regras de negócio entre os handlers e os repositórios.
package service

import (
	"context"
	"log/slog"

	"github.com/Werneck0live/estoque-automotivo/internal/broker"
)

// EventPublisher é satisfeito por *broker.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, e broker.Evento) error
}

// publish não falha a operação de negócio; só registra o erro.
func publish(ctx context.Context, pub EventPublisher, log *slog.Logger, e broker.Evento) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, e); err != nil {
		log.Error("publish_failed", "tipo", e.Tipo, "entidade_id", e.EntidadeID, "err", err)
	}
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
