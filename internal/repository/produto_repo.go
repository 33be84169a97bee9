package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/estoque-automotivo/internal/models"
)

// ProdutoFiltro espelha os query params da listagem de produtos.
type ProdutoFiltro struct {
	Nome          string
	Categoria     string
	CodigoProduto string
	PrecoMin      *float64
	PrecoMax      *float64
	EstoqueMin    *int
	FornecedorID  *primitive.ObjectID
	Status        *bool
}

func (f ProdutoFiltro) bson() bson.M {
	q := bson.M{}
	if f.Nome != "" {
		q["nome_produto"] = regexI(f.Nome)
	}
	if f.Categoria != "" {
		q["categoria"] = regexI(f.Categoria)
	}
	if f.CodigoProduto != "" {
		q["codigo_produto"] = regexI(f.CodigoProduto)
	}
	if f.PrecoMin != nil || f.PrecoMax != nil {
		preco := bson.M{}
		if f.PrecoMin != nil {
			preco["$gte"] = *f.PrecoMin
		}
		if f.PrecoMax != nil {
			preco["$lte"] = *f.PrecoMax
		}
		q["preco"] = preco
	}
	if f.EstoqueMin != nil {
		q["estoque"] = bson.M{"$gte": *f.EstoqueMin}
	}
	if f.FornecedorID != nil {
		q["id_fornecedor"] = *f.FornecedorID
	}
	if f.Status != nil {
		q["status"] = *f.Status
	}
	return q
}

type ProdutoRepository struct {
	coll *mongo.Collection
}

func NewProdutoRepository(db *mongo.Database) *ProdutoRepository {
	return &ProdutoRepository{coll: db.Collection("produtos")}
}

func (r *ProdutoRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndexes(ctx, r.coll,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "nome_produto", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_nome_produto"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "codigo_produto", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_codigo_produto"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "id_fornecedor", Value: 1}},
			Options: options.Index().SetName("idx_fornecedor"),
		},
	)
}

func (r *ProdutoRepository) Create(ctx context.Context, p *models.Produto) error {
	p.ID = primitive.NewObjectID()
	p.DataCadastro = time.Now()
	p.DataUltimaAtualizacao = p.DataCadastro
	_, err := r.coll.InsertOne(ctx, p)
	return translate(err)
}

func (r *ProdutoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Produto, error) {
	return findOne[models.Produto](ctx, r.coll, bson.M{"_id": id})
}

func (r *ProdutoRepository) List(ctx context.Context, f ProdutoFiltro, page, limit int64) (models.Page[models.Produto], error) {
	return paginate[models.Produto](ctx, r.coll, f.bson(), bson.D{{Key: "nome_produto", Value: 1}}, page, limit)
}

// ListEstoqueBaixo lista produtos com estoque <= estoque_min.
func (r *ProdutoRepository) ListEstoqueBaixo(ctx context.Context, page, limit int64) (models.Page[models.Produto], error) {
	filter := bson.M{"$expr": bson.M{"$lte": bson.A{"$estoque", "$estoque_min"}}}
	return paginate[models.Produto](ctx, r.coll, filter, bson.D{{Key: "estoque", Value: 1}}, page, limit)
}

func (r *ProdutoRepository) CountByFornecedor(ctx context.Context, fornecedorID primitive.ObjectID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"id_fornecedor": fornecedorID})
}

func (r *ProdutoRepository) Update(ctx context.Context, id primitive.ObjectID, p models.ProdutoPatch) (*models.Produto, error) {
	set := bson.M{"data_ultima_atualizacao": time.Now()}
	if p.NomeProduto != nil {
		set["nome_produto"] = *p.NomeProduto
	}
	if p.Descricao != nil {
		set["descricao"] = *p.Descricao
	}
	if p.Preco != nil {
		set["preco"] = *p.Preco
	}
	if p.Marca != nil {
		set["marca"] = *p.Marca
	}
	if p.Custo != nil {
		set["custo"] = *p.Custo
	}
	if p.Categoria != nil {
		set["categoria"] = *p.Categoria
	}
	if p.Estoque != nil {
		set["estoque"] = *p.Estoque
	}
	if p.EstoqueMin != nil {
		set["estoque_min"] = *p.EstoqueMin
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.FornecedorID != nil {
		set["id_fornecedor"] = *p.FornecedorID
	}
	if p.CodigoProduto != nil {
		set["codigo_produto"] = *p.CodigoProduto
	}
	return r.findAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

// Replace substitui o documento inteiro mantendo _id e data_cadastro.
func (r *ProdutoRepository) Replace(ctx context.Context, id primitive.ObjectID, p *models.Produto) (*models.Produto, error) {
	p.DataUltimaAtualizacao = time.Now()
	set, err := setDocument(p, "data_cadastro")
	if err != nil {
		return nil, err
	}
	return r.findAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

func (r *ProdutoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}

// AjustarEstoque soma delta ao estoque em uma única operação atômica.
// Saídas (delta negativo) só casam quando há saldo; entradas podem marcar
// data_ultima_entrada.
func (r *ProdutoRepository) AjustarEstoque(ctx context.Context, id primitive.ObjectID, delta int, marcarEntrada bool) (*models.Produto, error) {
	now := time.Now()
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["estoque"] = bson.M{"$gte": -delta}
	}
	set := bson.M{"data_ultima_atualizacao": now}
	if marcarEntrada && delta > 0 {
		set["data_ultima_entrada"] = now
	}
	p, err := r.findAndUpdate(ctx, filter, bson.M{"$inc": bson.M{"estoque": delta}, "$set": set})
	if errors.Is(err, ErrNotFound) && delta < 0 {
		n, cErr := r.coll.CountDocuments(ctx, bson.M{"_id": id})
		if cErr != nil {
			return nil, cErr
		}
		if n > 0 {
			return nil, ErrEstoqueInsuficiente
		}
	}
	return p, err
}

// RemoverEstoque subtrai q do estoque sem deixar o saldo negativo e devolve
// quanto foi de fato retirado (lido do documento anterior à atualização).
func (r *ProdutoRepository) RemoverEstoque(ctx context.Context, id primitive.ObjectID, q int) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "estoque", Value: bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{"$estoque", q}}}}},
			{Key: "data_ultima_atualizacao", Value: time.Now()},
		}}},
	}
	var antes models.Produto
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, pipeline, opts).Decode(&antes); err != nil {
		return 0, translate(err)
	}
	return min(q, max(antes.Estoque, 0)), nil
}

func (r *ProdutoRepository) findAndUpdate(ctx context.Context, filter bson.M, update any) (*models.Produto, error) {
	var p models.Produto
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
