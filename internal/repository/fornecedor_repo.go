package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/estoque-automotivo/internal/models"
)

type FornecedorFiltro struct {
	CNPJ           string // já sanitizado
	NomeFornecedor string
}

func (f FornecedorFiltro) bson() bson.M {
	q := bson.M{}
	if f.CNPJ != "" {
		q["cnpj"] = f.CNPJ
	}
	if f.NomeFornecedor != "" {
		q["nome_fornecedor"] = regexI(f.NomeFornecedor)
	}
	return q
}

type FornecedorRepository struct {
	coll *mongo.Collection
}

func NewFornecedorRepository(db *mongo.Database) *FornecedorRepository {
	return &FornecedorRepository{coll: db.Collection("fornecedores")}
}

func (r *FornecedorRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndexes(ctx, r.coll,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "cnpj", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_cnpj"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "nome_fornecedor", Value: 1}},
			Options: options.Index().SetName("idx_nome_fornecedor"),
		},
	)
}

func (r *FornecedorRepository) Create(ctx context.Context, f *models.Fornecedor) error {
	f.ID = primitive.NewObjectID()
	f.DataCadastro = time.Now()
	f.DataUltimaAtualizacao = f.DataCadastro
	_, err := r.coll.InsertOne(ctx, f)
	return translate(err)
}

func (r *FornecedorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Fornecedor, error) {
	return findOne[models.Fornecedor](ctx, r.coll, bson.M{"_id": id})
}

func (r *FornecedorRepository) List(ctx context.Context, f FornecedorFiltro, page, limit int64) (models.Page[models.Fornecedor], error) {
	return paginate[models.Fornecedor](ctx, r.coll, f.bson(), bson.D{{Key: "nome_fornecedor", Value: 1}}, page, limit)
}

func (r *FornecedorRepository) Update(ctx context.Context, id primitive.ObjectID, p models.FornecedorPatch) (*models.Fornecedor, error) {
	set := bson.M{"data_ultima_atualizacao": time.Now()}
	if p.NomeFornecedor != nil {
		set["nome_fornecedor"] = *p.NomeFornecedor
	}
	if p.CNPJ != nil {
		set["cnpj"] = *p.CNPJ
	}
	if p.Telefone != nil {
		set["telefone"] = *p.Telefone
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.Endereco != nil {
		set["endereco"] = p.Endereco
	}
	if err := updateByID(ctx, r.coll, id, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *FornecedorRepository) Replace(ctx context.Context, id primitive.ObjectID, f *models.Fornecedor) (*models.Fornecedor, error) {
	f.DataUltimaAtualizacao = time.Now()
	set, err := setDocument(f, "data_cadastro")
	if err != nil {
		return nil, err
	}
	if err := updateByID(ctx, r.coll, id, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *FornecedorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}
