package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound            = errors.New("document not found")
	ErrDuplicate           = errors.New("duplicate key")
	ErrInvalidID           = errors.New("invalid object id")
	ErrEstoqueInsuficiente = errors.New("insufficient stock")
)

// ObjectID converte o id hexadecimal vindo da URL.
func ObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// translate mapeia os erros do driver para os sentinelas do pacote.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return ErrDuplicate
			}
		}
	}
	return err
}
