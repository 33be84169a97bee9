package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Werneck0live/estoque-automotivo/internal/admin"
	"github.com/Werneck0live/estoque-automotivo/internal/broker"
	"github.com/Werneck0live/estoque-automotivo/internal/config"
	"github.com/Werneck0live/estoque-automotivo/internal/db"
	"github.com/Werneck0live/estoque-automotivo/internal/mail"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
)

// cmd/api/main.go
func main() {
	task := flag.String("task", "", "admin task: seed | indexes")
	flag.Parse()

	cfg, err := config.Load() // env + .env
	if err != nil {
		slog.Error("config_error", "err", err)
		os.Exit(1)
	}

	// Logger JSON "global" - permite usar slog.Info/slog.Error/Warn em qualquer lugar
	log := config.InitLogger(config.ParseLevel(cfg.LogLevel), "api")
	log.Info("starting", "port", cfg.Port, "mongo_db", cfg.MongoDB)

	client, err := db.NewMongoClient(cfg.MongoURI)
	if err != nil {
		log.Error("mongo_connect_error", "err", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rs := newRepos(client.Database(cfg.MongoDB))

	// HOOK: admin jobs (one-off), encerram sem subir HTTP
	if *task != "" {
		os.Exit(runTask(*task, cfg, rs, log))
	}

	if err := admin.EnsureIndexes(context.Background(), log, rs.indexados()); err != nil {
		log.Error("ensure_indexes_failed", "err", err)
		os.Exit(1)
	}

	// publisher (Rabbit)
	pub, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
	if err != nil {
		log.Error("rabbitmq_connect_error", "err", err)
		os.Exit(1)
	}
	defer pub.Close()

	var mailer mail.Mailer = &mail.LogMailer{Log: log}
	if cfg.ResendAPIKey != "" {
		mailer = mail.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom)
	} else {
		log.Warn("resend_disabled", "reason", "RESEND_API_KEY vazio; e-mails só serão logados")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes(cfg, client, rs, pub, mailer, log),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// start server
	go func() {
		log.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful_shutdown_error", "err", err)
	}
	log.Info("stopped")
}

func runTask(task string, cfg *config.Config, rs *repos, log *slog.Logger) int {
	ctx := context.Background()
	switch task {
	case "seed":
		if err := admin.EnsureIndexes(ctx, log, rs.indexados()); err != nil {
			log.Error("seed_failed", "err", err)
			return 1
		}
		st := admin.Stores{
			Grupos:       rs.grupos,
			Usuarios:     rs.usuarios,
			Fornecedores: rs.fornecedores,
			Produtos:     rs.produtos,
		}
		adm := admin.AdminUser{Matricula: cfg.AdminMatricula, Senha: cfg.AdminSenha, Email: cfg.AdminEmail}
		if err := admin.Seed(ctx, st, adm, log); err != nil {
			log.Error("seed_failed", "err", err)
			return 1
		}
		return 0
	case "indexes":
		if err := admin.EnsureIndexes(ctx, log, rs.indexados()); err != nil {
			log.Error("indexes_failed", "err", err)
			return 1
		}
		return 0
	default:
		log.Error("unknown_admin_task", "task", task)
		return 2
	}
}

type repos struct {
	produtos      *repository.ProdutoRepository
	fornecedores  *repository.FornecedorRepository
	usuarios      *repository.UsuarioRepository
	grupos        *repository.GrupoRepository
	movimentacoes *repository.MovimentacaoRepository
	sessoes       *repository.SessaoRepository
}

func newRepos(d *mongo.Database) *repos {
	return &repos{
		produtos:      repository.NewProdutoRepository(d),
		fornecedores:  repository.NewFornecedorRepository(d),
		usuarios:      repository.NewUsuarioRepository(d),
		grupos:        repository.NewGrupoRepository(d),
		movimentacoes: repository.NewMovimentacaoRepository(d),
		sessoes:       repository.NewSessaoRepository(d),
	}
}

func (r *repos) indexados() map[string]admin.IndexEnsurer {
	return map[string]admin.IndexEnsurer{
		"produtos":      r.produtos,
		"fornecedores":  r.fornecedores,
		"usuarios":      r.usuarios,
		"grupos":        r.grupos,
		"movimentacoes": r.movimentacoes,
		"sessoes":       r.sessoes,
	}
}
