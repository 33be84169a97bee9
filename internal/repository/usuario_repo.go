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

type UsuarioFiltro struct {
	NomeUsuario string
	Perfil      string
	Ativo       *bool
}

func (f UsuarioFiltro) bson() bson.M {
	q := bson.M{}
	if f.NomeUsuario != "" {
		q["nome_usuario"] = regexI(f.NomeUsuario)
	}
	if f.Perfil != "" {
		q["perfil"] = f.Perfil
	}
	if f.Ativo != nil {
		q["ativo"] = *f.Ativo
	}
	return q
}

type UsuarioRepository struct {
	coll *mongo.Collection
}

func NewUsuarioRepository(db *mongo.Database) *UsuarioRepository {
	return &UsuarioRepository{coll: db.Collection("usuarios")}
}

func (r *UsuarioRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndexes(ctx, r.coll,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "matricula", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_matricula"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "token_recuperacao", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("idx_token_recuperacao"),
		},
	)
}

func (r *UsuarioRepository) Create(ctx context.Context, u *models.Usuario) error {
	u.ID = primitive.NewObjectID()
	u.DataCadastro = time.Now()
	u.DataUltimaAtualizacao = u.DataCadastro
	if u.Grupos == nil {
		u.Grupos = []primitive.ObjectID{}
	}
	if u.Permissoes == nil {
		u.Permissoes = []models.Permissao{}
	}
	_, err := r.coll.InsertOne(ctx, u)
	return translate(err)
}

func (r *UsuarioRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Usuario, error) {
	return findOne[models.Usuario](ctx, r.coll, bson.M{"_id": id})
}

func (r *UsuarioRepository) GetByMatricula(ctx context.Context, matricula string) (*models.Usuario, error) {
	return findOne[models.Usuario](ctx, r.coll, bson.M{"matricula": matricula})
}

func (r *UsuarioRepository) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	return findOne[models.Usuario](ctx, r.coll, bson.M{"email": email})
}

func (r *UsuarioRepository) GetByTokenRecuperacao(ctx context.Context, token string) (*models.Usuario, error) {
	return findOne[models.Usuario](ctx, r.coll, bson.M{"token_recuperacao": token})
}

func (r *UsuarioRepository) List(ctx context.Context, f UsuarioFiltro, page, limit int64) (models.Page[models.Usuario], error) {
	return paginate[models.Usuario](ctx, r.coll, f.bson(), bson.D{{Key: "nome_usuario", Value: 1}}, page, limit)
}

func (r *UsuarioRepository) Update(ctx context.Context, id primitive.ObjectID, p models.UsuarioPatch) (*models.Usuario, error) {
	set := bson.M{"data_ultima_atualizacao": time.Now()}
	if p.NomeUsuario != nil {
		set["nome_usuario"] = *p.NomeUsuario
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.Perfil != nil {
		set["perfil"] = *p.Perfil
	}
	if p.Ativo != nil {
		set["ativo"] = *p.Ativo
	}
	if p.Grupos != nil {
		set["grupos"] = *p.Grupos
	}
	if p.Permissoes != nil {
		set["permissoes"] = *p.Permissoes
	}
	if p.SenhaHash != nil {
		set["senha"] = *p.SenhaHash
	}
	if err := updateByID(ctx, r.coll, id, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UsuarioRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}

// SetTokens grava o par de tokens emitido no login/refresh.
func (r *UsuarioRepository) SetTokens(ctx context.Context, id primitive.ObjectID, access, refresh string) error {
	return updateByID(ctx, r.coll, id, bson.M{"$set": bson.M{
		"accesstoken":  access,
		"refreshtoken": refresh,
	}})
}

func (r *UsuarioRepository) ClearTokens(ctx context.Context, id primitive.ObjectID) error {
	return updateByID(ctx, r.coll, id, bson.M{"$unset": bson.M{
		"accesstoken":  "",
		"refreshtoken": "",
	}})
}

func (r *UsuarioRepository) SetRecuperacao(ctx context.Context, id primitive.ObjectID, token, codigo string, expira time.Time) error {
	return updateByID(ctx, r.coll, id, bson.M{"$set": bson.M{
		"token_recuperacao":     token,
		"codigo_recuperacao":    codigo,
		"data_expiracao_codigo": expira,
	}})
}

// RedefinirSenha troca o hash, limpa a recuperação e derruba as sessões.
func (r *UsuarioRepository) RedefinirSenha(ctx context.Context, id primitive.ObjectID, hash string) error {
	return updateByID(ctx, r.coll, id, bson.M{
		"$set": bson.M{"senha": hash, "data_ultima_atualizacao": time.Now()},
		"$unset": bson.M{
			"token_recuperacao":     "",
			"codigo_recuperacao":    "",
			"data_expiracao_codigo": "",
			"accesstoken":           "",
			"refreshtoken":          "",
		},
	})
}

// RemoveGrupo tira o grupo de todos os usuários que o referenciam.
func (r *UsuarioRepository) RemoveGrupo(ctx context.Context, grupoID primitive.ObjectID) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"grupos": grupoID},
		bson.M{"$pull": bson.M{"grupos": grupoID}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
