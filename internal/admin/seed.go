// Package admin reúne as tarefas avulsas do binário da API (-task seed,
// -task indexes), executadas sem subir o servidor HTTP.
package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"

	"github.com/Werneck0live/estoque-automotivo/internal/auth"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

var (
	//go:embed seeds/grupos.yaml
	gruposYAML []byte
	//go:embed seeds/fornecedores.json
	fornecedoresJSON []byte
	//go:embed seeds/produtos.json
	produtosJSON []byte
)

const grupoAdmin = "Administradores"

type GrupoSeeder interface {
	Create(ctx context.Context, g *models.Grupo) error
	GetByNome(ctx context.Context, nome string, excludeID *primitive.ObjectID) (*models.Grupo, error)
}

type UsuarioSeeder interface {
	Create(ctx context.Context, u *models.Usuario) error
}

type FornecedorSeeder interface {
	Create(ctx context.Context, f *models.Fornecedor) error
	List(ctx context.Context, f repository.FornecedorFiltro, page, limit int64) (models.Page[models.Fornecedor], error)
}

type ProdutoSeeder interface {
	Create(ctx context.Context, p *models.Produto) error
}

// Stores são os repositórios usados pelo seed.
type Stores struct {
	Grupos       GrupoSeeder
	Usuarios     UsuarioSeeder
	Fornecedores FornecedorSeeder
	Produtos     ProdutoSeeder
}

// AdminUser vem das variáveis ADMIN_*; sem matrícula ou senha o passo é pulado.
type AdminUser struct {
	Matricula string
	Senha     string
	Email     string
}

type grupoSeed struct {
	Nome       string             `yaml:"nome"`
	Descricao  string             `yaml:"descricao"`
	Permissoes []models.Permissao `yaml:"permissoes"`
}

type produtoSeed struct {
	models.Produto
	CNPJFornecedor string `json:"cnpj_fornecedor"`
}

// Seed é idempotente: registros que já existem são ignorados.
func Seed(ctx context.Context, st Stores, adm AdminUser, log *slog.Logger) error {
	grupos, err := seedGrupos(ctx, st.Grupos, log)
	if err != nil {
		return errors.Wrap(err, "seed grupos")
	}
	if err := seedAdmin(ctx, st.Usuarios, adm, grupos[grupoAdmin], log); err != nil {
		return errors.Wrap(err, "seed admin")
	}
	if err := seedFornecedores(ctx, st.Fornecedores, log); err != nil {
		return errors.Wrap(err, "seed fornecedores")
	}
	if err := seedProdutos(ctx, st.Fornecedores, st.Produtos, log); err != nil {
		return errors.Wrap(err, "seed produtos")
	}
	log.Info("seed_done")
	return nil
}

// item aplica um timeout curto por registro pra não travar o seed.
func item(ctx context.Context, fn func(context.Context) error) error {
	ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return fn(ictx)
}

func seedGrupos(ctx context.Context, store GrupoSeeder, log *slog.Logger) (map[string]primitive.ObjectID, error) {
	var items []grupoSeed
	if err := yaml.Unmarshal(gruposYAML, &items); err != nil {
		return nil, errors.Wrap(err, "decode grupos.yaml")
	}
	ids := make(map[string]primitive.ObjectID, len(items))
	for _, s := range items {
		err := item(ctx, func(ctx context.Context) error {
			if g, err := store.GetByNome(ctx, s.Nome, nil); err == nil {
				ids[s.Nome] = g.ID
				log.Info("seed_grupo_exists", "nome", s.Nome)
				return nil
			} else if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			for i := range s.Permissoes {
				s.Permissoes[i].Normalizar()
			}
			g := &models.Grupo{Nome: s.Nome, Descricao: s.Descricao, Ativo: true, Permissoes: s.Permissoes}
			if err := store.Create(ctx, g); err != nil {
				return err
			}
			ids[s.Nome] = g.ID
			log.Info("seed_grupo_created", "nome", s.Nome)
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "grupo %s", s.Nome)
		}
	}
	return ids, nil
}

func seedAdmin(ctx context.Context, store UsuarioSeeder, adm AdminUser, grupo primitive.ObjectID, log *slog.Logger) error {
	if adm.Matricula == "" || adm.Senha == "" {
		log.Warn("seed_admin_skipped", "reason", "ADMIN_MATRICULA/ADMIN_SENHA não definidos")
		return nil
	}
	if !auth.SenhaForte(adm.Senha) {
		return errors.New("ADMIN_SENHA não atende à política de senha")
	}
	hash, err := auth.HashSenha(adm.Senha)
	if err != nil {
		return err
	}
	email := adm.Email
	if email == "" {
		email = adm.Matricula + "@estoque.local"
	}
	u := &models.Usuario{
		NomeUsuario: "Administrador",
		Email:       email,
		Matricula:   adm.Matricula,
		Perfil:      models.PerfilAdministrador,
		Ativo:       true,
		SenhaHash:   hash,
	}
	if !grupo.IsZero() {
		u.Grupos = []primitive.ObjectID{grupo}
	}
	err = item(ctx, func(ctx context.Context) error { return store.Create(ctx, u) })
	if errors.Is(err, repository.ErrDuplicate) {
		log.Info("seed_admin_exists", "matricula", adm.Matricula)
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("seed_admin_created", "matricula", adm.Matricula)
	return nil
}

func seedFornecedores(ctx context.Context, store FornecedorSeeder, log *slog.Logger) error {
	var items []models.Fornecedor
	if err := json.Unmarshal(fornecedoresJSON, &items); err != nil {
		return errors.Wrap(err, "decode fornecedores.json")
	}
	for i := range items {
		f := &items[i]
		f.CNPJ = utils.SanitizeCNPJ(f.CNPJ)
		if !utils.ValidateCNPJ(f.CNPJ) {
			log.Warn("seed_skip_invalid_cnpj", "cnpj", f.CNPJ)
			continue
		}
		err := item(ctx, func(ctx context.Context) error { return store.Create(ctx, f) })
		if errors.Is(err, repository.ErrDuplicate) {
			log.Info("seed_fornecedor_exists", "cnpj", f.CNPJ)
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "fornecedor %s", f.CNPJ)
		}
		log.Info("seed_fornecedor_created", "cnpj", f.CNPJ)
	}
	return nil
}

func seedProdutos(ctx context.Context, fornecedores FornecedorSeeder, store ProdutoSeeder, log *slog.Logger) error {
	var items []produtoSeed
	if err := json.Unmarshal(produtosJSON, &items); err != nil {
		return errors.Wrap(err, "decode produtos.json")
	}
	porCNPJ := map[string]primitive.ObjectID{}
	for _, s := range items {
		fid, ok := porCNPJ[s.CNPJFornecedor]
		if !ok {
			var page models.Page[models.Fornecedor]
			err := item(ctx, func(ctx context.Context) error {
				var err error
				page, err = fornecedores.List(ctx, repository.FornecedorFiltro{CNPJ: s.CNPJFornecedor}, 1, 1)
				return err
			})
			if err != nil {
				return err
			}
			if len(page.Docs) == 0 {
				log.Warn("seed_skip_produto_sem_fornecedor", "codigo", s.CodigoProduto, "cnpj", s.CNPJFornecedor)
				continue
			}
			fid = page.Docs[0].ID
			porCNPJ[s.CNPJFornecedor] = fid
		}

		p := s.Produto
		p.FornecedorID = fid
		p.Status = true
		if p.Categoria == "" {
			cat, err := utils.CategoriaPorPreco(p.Preco)
			if err != nil {
				log.Warn("seed_skip_produto_preco", "codigo", p.CodigoProduto, "preco", p.Preco)
				continue
			}
			p.Categoria = cat
		}
		err := item(ctx, func(ctx context.Context) error { return store.Create(ctx, &p) })
		if errors.Is(err, repository.ErrDuplicate) {
			log.Info("seed_produto_exists", "codigo", p.CodigoProduto)
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "produto %s", p.CodigoProduto)
		}
		log.Info("seed_produto_created", "codigo", p.CodigoProduto)
	}
	return nil
}
