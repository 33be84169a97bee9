package repository

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/estoque-automotivo/internal/models"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

func normalizePage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// paginate executa count + find com skip/limit e monta o resultado paginado.
func paginate[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D, page, limit int64) (models.Page[T], error) {
	page, limit = normalizePage(page, limit)
	if filter == nil {
		filter = bson.M{}
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return models.Page[T]{}, err
	}

	opts := options.Find().SetSkip((page - 1) * limit).SetLimit(limit)
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	docs, err := findAll[T](ctx, coll, filter, opts)
	if err != nil {
		return models.Page[T]{}, err
	}
	return models.NewPage(docs, total, page, limit), nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []T{}
	for cur.Next(ctx) {
		var v T
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, cur.Err()
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any) (*T, error) {
	var v T
	if err := coll.FindOne(ctx, filter).Decode(&v); err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

// deleteByID devolve ErrNotFound quando nada foi removido.
func deleteByID(ctx context.Context, coll *mongo.Collection, id any) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func updateByID(ctx context.Context, coll *mongo.Collection, id any, update any) error {
	res, err := coll.UpdateByID(ctx, id, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// regexI monta um filtro case-insensitive com o texto escapado.
func regexI(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// setDocument converte o documento em $set preservando _id e a data de criação.
func setDocument(doc any, createdField string) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	delete(set, "_id")
	delete(set, createdField)
	return set, nil
}
