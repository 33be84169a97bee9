package main

import (
	"context"
	"log/slog"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Werneck0live/estoque-automotivo/internal/auth"
	"github.com/Werneck0live/estoque-automotivo/internal/config"
	"github.com/Werneck0live/estoque-automotivo/internal/db"
	"github.com/Werneck0live/estoque-automotivo/internal/handlers"
	"github.com/Werneck0live/estoque-automotivo/internal/mail"
	mw "github.com/Werneck0live/estoque-automotivo/internal/middleware"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/service"
)

func routes(cfg *config.Config, client *mongo.Client, r *repos, pub service.EventPublisher, mailer mail.Mailer, log *slog.Logger) http.Handler {
	tokens := auth.NewTokenManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTokenExpiration, cfg.RefreshTokenExpiration)

	usuarioSvc := &service.UsuarioService{Usuarios: r.usuarios, Grupos: r.grupos}
	permSvc := &service.PermissionService{Grupos: r.grupos, Dominio: cfg.PermissionDomain}
	auditSvc := &service.AuditService{Sessoes: r.sessoes, Log: log}
	authSvc := &service.AuthService{
		Usuarios:    r.usuarios,
		Cadastro:    usuarioSvc,
		Tokens:      tokens,
		Audit:       auditSvc,
		Mailer:      mailer,
		RecoveryTTL: cfg.RecoveryExpiration,
		ResetURL:    cfg.ResetURL,
		Log:         log,
	}

	produtos := &handlers.ProdutoHandler{Svc: &service.ProdutoService{
		Produtos:     r.produtos,
		Fornecedores: r.fornecedores,
		Pub:          pub,
		Log:          log,
	}}
	fornecedores := &handlers.FornecedorHandler{Svc: &service.FornecedorService{
		Fornecedores: r.fornecedores,
		Produtos:     r.produtos,
		Pub:          pub,
		Log:          log,
	}}
	movs := &handlers.MovimentacaoHandler{Svc: &service.MovimentacaoService{
		Movs:         r.movimentacoes,
		Produtos:     r.produtos,
		Fornecedores: r.fornecedores,
		Pub:          pub,
		EditWindow:   cfg.EditWindow,
		DeleteWindow: cfg.DeleteWindow,
		Log:          log,
	}}
	usuarios := &handlers.UsuarioHandler{Svc: usuarioSvc, Perms: permSvc}
	grupos := &handlers.GrupoHandler{Svc: &service.GrupoService{Grupos: r.grupos, Usuarios: r.usuarios}}
	logs := &handlers.LogHandler{Svc: auditSvc}
	authH := &handlers.AuthHandler{Svc: authSvc, Audit: auditSvc}
	health := &handlers.HealthHandler{Ping: func(ctx context.Context) error { return db.Ping(ctx, client) }}

	autenticado := mw.Auth(tokens, r.usuarios)
	// protegido monta a cadeia das rotas /api com permissão por rota e auditoria das escritas
	protegido := func(h http.HandlerFunc, rota, evento string) http.Handler {
		return mw.Chain(h, autenticado, mw.Permission(permSvc, rota, log), mw.Audit(auditSvc, evento))
	}
	soAdmin := func(h http.HandlerFunc) http.Handler {
		return mw.Chain(h, autenticado, mw.AdminOnly)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", health.Health)

	mux.HandleFunc("/auth/login", authH.Login)
	mux.HandleFunc("/auth/logout", authH.Logout)
	mux.HandleFunc("/auth/refresh", authH.Refresh)
	mux.Handle("/auth/revoke", soAdmin(authH.Revoke))
	mux.HandleFunc("/auth/introspect", authH.Introspect)
	mux.HandleFunc("/auth/signup", authH.Signup)
	mux.HandleFunc("/auth/recover", authH.Recover)
	mux.HandleFunc("/auth/password/reset/token", authH.ResetByToken)
	mux.HandleFunc("/auth/password/reset/code", authH.ResetByCode)

	mux.Handle("/api/produtos", protegido(produtos.Produtos, "produtos", models.EventoEstoqueMovimento))
	mux.Handle("/api/produtos/", protegido(produtos.ProdutoByID, "produtos", models.EventoEstoqueMovimento))
	mux.Handle("/api/fornecedores", protegido(fornecedores.Fornecedores, "fornecedores", models.EventoUsuarioAcao))
	mux.Handle("/api/fornecedores/", protegido(fornecedores.FornecedorByID, "fornecedores", models.EventoUsuarioAcao))
	mux.Handle("/api/movimentacoes", protegido(movs.Movimentacoes, "movimentacoes", models.EventoEstoqueMovimento))
	mux.Handle("/api/movimentacoes/", protegido(movs.MovimentacaoByID, "movimentacoes", models.EventoEstoqueMovimento))
	mux.Handle("/api/usuarios", protegido(usuarios.Usuarios, "usuarios", models.EventoUsuarioAcao))
	mux.Handle("/api/usuarios/", protegido(usuarios.UsuarioByMatricula, "usuarios", models.EventoUsuarioAcao))
	mux.Handle("/api/grupos", protegido(grupos.Grupos, "grupos", models.EventoUsuarioAcao))
	mux.Handle("/api/grupos/", protegido(grupos.GrupoByID, "grupos", models.EventoUsuarioAcao))

	// logs: só administrador, exceto a consulta dos próprios logs (checada no service)
	mux.Handle("/api/logs/online-users", soAdmin(logs.OnlineUsers))
	mux.Handle("/api/logs/usuario/", mw.Chain(http.HandlerFunc(logs.DoUsuario), autenticado))
	mux.Handle("/api/logs/search", soAdmin(logs.Search))
	mux.Handle("/api/logs/statistics", soAdmin(logs.Statistics))
	mux.Handle("/api/logs/critical", soAdmin(logs.Critical))

	mux.HandleFunc("/", handlers.NotFound)

	return mw.Chain(mux, mw.RequestID, mw.Logging(log))
}
