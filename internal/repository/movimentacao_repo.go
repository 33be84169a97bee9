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

// MovimentacaoFiltro: Produto e Usuario aceitam ObjectID ou texto livre.
type MovimentacaoFiltro struct {
	Tipo       string
	DataInicio *time.Time
	DataFim    *time.Time
	Produto    string
	Usuario    string
}

func (f MovimentacaoFiltro) bson() bson.M {
	q := bson.M{}
	if f.Tipo != "" {
		q["tipo"] = f.Tipo
	}
	if f.DataInicio != nil || f.DataFim != nil {
		data := bson.M{}
		if f.DataInicio != nil {
			data["$gte"] = *f.DataInicio
		}
		if f.DataFim != nil {
			data["$lte"] = *f.DataFim
		}
		q["data_movimentacao"] = data
	}
	if f.Produto != "" {
		if oid, err := primitive.ObjectIDFromHex(f.Produto); err == nil {
			q["produtos.produto_ref"] = oid
		} else {
			q["$or"] = bson.A{
				bson.M{"produtos.nome_produto": regexI(f.Produto)},
				bson.M{"produtos.codigo_produto": regexI(f.Produto)},
			}
		}
	}
	if f.Usuario != "" {
		if oid, err := primitive.ObjectIDFromHex(f.Usuario); err == nil {
			q["id_usuario"] = oid
		} else {
			q["nome_usuario"] = regexI(f.Usuario)
		}
	}
	return q
}

type MovimentacaoRepository struct {
	coll *mongo.Collection
}

func NewMovimentacaoRepository(db *mongo.Database) *MovimentacaoRepository {
	return &MovimentacaoRepository{coll: db.Collection("movimentacoes")}
}

func (r *MovimentacaoRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndexes(ctx, r.coll,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "data_movimentacao", Value: -1}},
			Options: options.Index().SetName("idx_data_movimentacao"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "tipo", Value: 1}, {Key: "data_movimentacao", Value: -1}},
			Options: options.Index().SetName("idx_tipo_data"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "produtos.produto_ref", Value: 1}},
			Options: options.Index().SetName("idx_produto_ref"),
		},
	)
}

func (r *MovimentacaoRepository) Create(ctx context.Context, m *models.Movimentacao) error {
	m.ID = primitive.NewObjectID()
	m.DataCadastro = time.Now()
	m.DataUltimaAtualizacao = m.DataCadastro
	_, err := r.coll.InsertOne(ctx, m)
	return translate(err)
}

func (r *MovimentacaoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Movimentacao, error) {
	return findOne[models.Movimentacao](ctx, r.coll, bson.M{"_id": id})
}

func (r *MovimentacaoRepository) List(ctx context.Context, f MovimentacaoFiltro, page, limit int64) (models.Page[models.Movimentacao], error) {
	return paginate[models.Movimentacao](ctx, r.coll, f.bson(), bson.D{{Key: "data_movimentacao", Value: -1}}, page, limit)
}

func (r *MovimentacaoRepository) Update(ctx context.Context, id primitive.ObjectID, p models.MovimentacaoPatch) (*models.Movimentacao, error) {
	set := bson.M{"data_ultima_atualizacao": time.Now()}
	if p.Tipo != nil {
		set["tipo"] = *p.Tipo
	}
	if p.Destino != nil {
		set["destino"] = *p.Destino
	}
	if p.DataMovimentacao != nil {
		set["data_movimentacao"] = *p.DataMovimentacao
	}
	if p.UsuarioID != nil {
		set["id_usuario"] = *p.UsuarioID
	}
	if p.NomeUsuario != nil {
		set["nome_usuario"] = *p.NomeUsuario
	}
	if p.Produtos != nil {
		set["produtos"] = p.Produtos
	}
	if err := updateByID(ctx, r.coll, id, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *MovimentacaoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}
