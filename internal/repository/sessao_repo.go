package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/estoque-automotivo/internal/models"
)

// SessaoRepository guarda as sessões de auditoria (login até logout) com seus eventos.
type SessaoRepository struct {
	coll *mongo.Collection
}

func NewSessaoRepository(db *mongo.Database) *SessaoRepository {
	return &SessaoRepository{coll: db.Collection("sessoes")}
}

func (r *SessaoRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndexes(ctx, r.coll,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "usuario.id", Value: 1}, {Key: "inicio", Value: -1}},
			Options: options.Index().SetName("idx_usuario_inicio"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "eventos.tipo", Value: 1}, {Key: "eventos.timestamp", Value: -1}},
			Options: options.Index().SetName("idx_eventos"),
		},
	)
}

func (r *SessaoRepository) Create(ctx context.Context, s *models.Sessao) error {
	if s.Eventos == nil {
		s.Eventos = []models.Evento{}
	}
	_, err := r.coll.InsertOne(ctx, s)
	return translate(err)
}

func (r *SessaoRepository) GetByID(ctx context.Context, id string) (*models.Sessao, error) {
	return findOne[models.Sessao](ctx, r.coll, bson.M{"_id": id})
}

func (r *SessaoRepository) AppendEvento(ctx context.Context, id string, e models.Evento) error {
	return updateByID(ctx, r.coll, id, bson.M{"$push": bson.M{"eventos": e}})
}

// Encerrar fecha a sessão; sessões já encerradas não são alteradas.
func (r *SessaoRepository) Encerrar(ctx context.Context, id string, fim time.Time, e models.Evento) error {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s.Fim != nil {
		return nil
	}
	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "fim": bson.M{"$exists": false}},
		bson.M{
			"$set": bson.M{
				"fim":              fim,
				"duracao_segundos": int64(fim.Sub(s.Inicio).Seconds()),
			},
			"$push": bson.M{"eventos": e},
		},
	)
	return err
}

func (r *SessaoRepository) ListByUsuario(ctx context.Context, usuarioID string, limit int64) ([]models.Sessao, error) {
	opts := options.Find().SetSort(bson.D{{Key: "inicio", Value: -1}}).SetLimit(limit)
	return findAll[models.Sessao](ctx, r.coll, bson.M{"usuario.id": usuarioID}, opts)
}

// ListAbertas devolve as sessões sem logout, ou seja, usuários online.
func (r *SessaoRepository) ListAbertas(ctx context.Context) ([]models.Sessao, error) {
	opts := options.Find().SetSort(bson.D{{Key: "inicio", Value: -1}})
	return findAll[models.Sessao](ctx, r.coll, bson.M{"fim": bson.M{"$exists": false}}, opts)
}

// EventoFiltro restringe eventos por tipo e intervalo; campos vazios não filtram.
type EventoFiltro struct {
	Tipos  []string
	Inicio *time.Time
	Fim    *time.Time
	Limite int64
}

func (f EventoFiltro) match() bson.M {
	q := bson.M{}
	if len(f.Tipos) > 0 {
		q["eventos.tipo"] = bson.M{"$in": f.Tipos}
	}
	if f.Inicio != nil || f.Fim != nil {
		ts := bson.M{}
		if f.Inicio != nil {
			ts["$gte"] = *f.Inicio
		}
		if f.Fim != nil {
			ts["$lte"] = *f.Fim
		}
		q["eventos.timestamp"] = ts
	}
	return q
}

// BuscarEventos desagrupa os eventos das sessões e devolve os mais recentes primeiro.
func (r *SessaoRepository) BuscarEventos(ctx context.Context, f EventoFiltro) ([]models.EventoUsuario, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$eventos"}},
		{{Key: "$match", Value: f.match()}},
		{{Key: "$sort", Value: bson.D{{Key: "eventos.timestamp", Value: -1}}}},
	}
	if f.Limite > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: f.Limite}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.D{
		{Key: "_id", Value: 0},
		{Key: "sessao", Value: "$_id"},
		{Key: "usuario", Value: 1},
		{Key: "evento", Value: "$eventos"},
	}}})

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.EventoUsuario{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ContarEventos agrupa a contagem de eventos por tipo.
func (r *SessaoRepository) ContarEventos(ctx context.Context, f EventoFiltro) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$eventos"}},
		{{Key: "$match", Value: f.match()}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$eventos.tipo"},
			{Key: "total", Value: bson.M{"$sum": 1}},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Tipo  string `bson:"_id"`
		Total int    `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Tipo] = row.Total
	}
	return out, nil
}

// UsuariosDistintos conta usuários distintos com algum evento dos tipos informados.
func (r *SessaoRepository) UsuariosDistintos(ctx context.Context, tipos []string) (int, error) {
	ids, err := r.coll.Distinct(ctx, "usuario.id", bson.M{"eventos.tipo": bson.M{"$in": tipos}})
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
