package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/estoque-automotivo/internal/models"
)

type GrupoFiltro struct {
	Nome  string
	Ativo *bool
}

func (f GrupoFiltro) bson() bson.M {
	q := bson.M{}
	if f.Nome != "" {
		q["nome"] = regexI(f.Nome)
	}
	if f.Ativo != nil {
		q["ativo"] = *f.Ativo
	}
	return q
}

type GrupoRepository struct {
	coll *mongo.Collection
}

func NewGrupoRepository(db *mongo.Database) *GrupoRepository {
	return &GrupoRepository{coll: db.Collection("grupos")}
}

func (r *GrupoRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndexes(ctx, r.coll, mongo.IndexModel{
		Keys:    bson.D{{Key: "nome", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_nome"),
	})
}

func (r *GrupoRepository) Create(ctx context.Context, g *models.Grupo) error {
	g.ID = primitive.NewObjectID()
	g.DataCriacao = time.Now()
	g.DataAtualizacao = g.DataCriacao
	if g.Permissoes == nil {
		g.Permissoes = []models.Permissao{}
	}
	_, err := r.coll.InsertOne(ctx, g)
	return translate(err)
}

func (r *GrupoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Grupo, error) {
	return findOne[models.Grupo](ctx, r.coll, bson.M{"_id": id})
}

// GetByNome compara o nome sem diferenciar maiúsculas; excludeID ignora o próprio grupo na edição.
func (r *GrupoRepository) GetByNome(ctx context.Context, nome string, excludeID *primitive.ObjectID) (*models.Grupo, error) {
	q := bson.M{"nome": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(nome) + "$", Options: "i"}}
	if excludeID != nil {
		q["_id"] = bson.M{"$ne": *excludeID}
	}
	return findOne[models.Grupo](ctx, r.coll, q)
}

// GetMany devolve os grupos existentes entre os ids informados.
func (r *GrupoRepository) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Grupo, error) {
	if len(ids) == 0 {
		return []models.Grupo{}, nil
	}
	return findAll[models.Grupo](ctx, r.coll, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *GrupoRepository) List(ctx context.Context, f GrupoFiltro, page, limit int64) (models.Page[models.Grupo], error) {
	return paginate[models.Grupo](ctx, r.coll, f.bson(), bson.D{{Key: "nome", Value: 1}}, page, limit)
}

func (r *GrupoRepository) Update(ctx context.Context, id primitive.ObjectID, p models.GrupoPatch) (*models.Grupo, error) {
	set := bson.M{"data_atualizacao": time.Now()}
	if p.Nome != nil {
		set["nome"] = *p.Nome
	}
	if p.Descricao != nil {
		set["descricao"] = *p.Descricao
	}
	if p.Ativo != nil {
		set["ativo"] = *p.Ativo
	}
	if p.Permissoes != nil {
		set["permissoes"] = *p.Permissoes
	}
	if err := updateByID(ctx, r.coll, id, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *GrupoRepository) SetAtivo(ctx context.Context, id primitive.ObjectID, ativo bool) (*models.Grupo, error) {
	return r.Update(ctx, id, models.GrupoPatch{Ativo: &ativo})
}

func (r *GrupoRepository) AddPermissao(ctx context.Context, id primitive.ObjectID, p models.Permissao) (*models.Grupo, error) {
	err := updateByID(ctx, r.coll, id, bson.M{
		"$push": bson.M{"permissoes": p},
		"$set":  bson.M{"data_atualizacao": time.Now()},
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *GrupoRepository) RemovePermissao(ctx context.Context, id primitive.ObjectID, rota, dominio string) (*models.Grupo, error) {
	err := updateByID(ctx, r.coll, id, bson.M{
		"$pull": bson.M{"permissoes": bson.M{"rota": rota, "dominio": dominio}},
		"$set":  bson.M{"data_atualizacao": time.Now()},
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *GrupoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}
