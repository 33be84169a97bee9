package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

type IndexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes cria os índices de todas as coleções; usado no startup e em -task indexes.
func EnsureIndexes(ctx context.Context, log *slog.Logger, colls map[string]IndexEnsurer) error {
	for nome, c := range colls {
		ictx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := c.EnsureIndexes(ictx)
		cancel()
		if err != nil {
			return errors.Wrapf(err, "indexes %s", nome)
		}
		log.Info("indexes_ok", "collection", nome)
	}
	return nil
}
