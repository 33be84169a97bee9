package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// codeIndexOptionsConflict é devolvido quando o índice existe com outras opções.
const codeIndexOptionsConflict = 85

func ensureIndexes(ctx context.Context, coll *mongo.Collection, models ...mongo.IndexModel) error {
	for _, model := range models {
		if err := ensureIndex(ctx, coll, model); err != nil {
			return fmt.Errorf("%s: %w", coll.Name(), err)
		}
	}
	return nil
}

func ensureIndex(ctx context.Context, coll *mongo.Collection, model mongo.IndexModel) error {
	_, err := coll.Indexes().CreateOne(ctx, model)
	if err == nil {
		return nil
	}
	// Se já existir com outra opção, dropa e recria
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == codeIndexOptionsConflict && model.Options != nil && model.Options.Name != nil {
		name := *model.Options.Name
		if _, dropErr := coll.Indexes().DropOne(ctx, name); dropErr != nil {
			return fmt.Errorf("drop index %s: %w", name, dropErr)
		}
		_, err = coll.Indexes().CreateOne(ctx, model)
	}
	return err
}
