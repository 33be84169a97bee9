package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/auth"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type usuariosMock struct {
	GetByIDFn func(ctx context.Context, id primitive.ObjectID) (*models.Usuario, error)
}

func (m *usuariosMock) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Usuario, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}

type checkerMock struct {
	HasPermissionFn func(ctx context.Context, u *models.Usuario, rota, metodo string) (bool, error)
}

func (m *checkerMock) HasPermission(ctx context.Context, u *models.Usuario, rota, metodo string) (bool, error) {
	if m.HasPermissionFn == nil {
		return false, errors.New("HasPermissionFn not set")
	}
	return m.HasPermissionFn(ctx, u, rota, metodo)
}

type recorderMock struct {
	sessao  string
	eventos []models.Evento
}

func (m *recorderMock) Registrar(_ context.Context, sid string, e models.Evento) {
	m.sessao = sid
	m.eventos = append(m.eventos, e)
}

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rr.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("generated id = %q; header = %q", seen, rr.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if seen != "abc-123" {
		t.Fatalf("request id = %q; want abc-123", seen)
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer tok": "tok",
		"bearer tok": "tok",
		"Basic xyz":  "",
		"Bearer    ": "",
		"":           "",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		got, _ := BearerToken(req)
		if got != want {
			t.Fatalf("BearerToken(%q) = %q; want %q", header, got, want)
		}
	}
}

func authFixture(t *testing.T, u *models.Usuario) (*auth.TokenManager, string, *usuariosMock) {
	t.Helper()
	tm := auth.NewTokenManager("a", "r", time.Hour, time.Hour)
	tok, err := tm.NewAccess(auth.Claims{UsuarioID: u.ID.Hex(), Matricula: u.Matricula, SessaoID: "S1"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	u.AccessToken = tok
	um := &usuariosMock{GetByIDFn: func(_ context.Context, id primitive.ObjectID) (*models.Usuario, error) {
		if id != u.ID {
			return nil, repository.ErrNotFound
		}
		cp := *u
		return &cp, nil
	}}
	return tm, tok, um
}

func TestAuth(t *testing.T) {
	u := &models.Usuario{ID: primitive.NewObjectID(), Matricula: "M1", Ativo: true}
	tm, tok, um := authFixture(t, u)

	var got *Principal
	h := Auth(tm, um)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/produtos", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d; body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if got == nil || got.Usuario.Matricula != "M1" || got.SessaoID() != "S1" {
		t.Fatalf("unexpected principal: %#v", got)
	}
}

func TestAuth_Rejeicoes(t *testing.T) {
	u := &models.Usuario{ID: primitive.NewObjectID(), Matricula: "M1", Ativo: true}
	tm, tok, um := authFixture(t, u)
	h := Auth(tm, um)(http.HandlerFunc(ok))

	do := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/produtos", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := do(""); code != http.StatusUnauthorized {
		t.Fatalf("sem token: status = %d; want 401", code)
	}
	if code := do("Bearer lixo"); code != http.StatusUnauthorized {
		t.Fatalf("token inválido: status = %d; want 401", code)
	}

	// token antigo (após logout/refresh) não vale mais
	u.AccessToken = "outro"
	if code := do("Bearer " + tok); code != http.StatusUnauthorized {
		t.Fatalf("token substituído: status = %d; want 401", code)
	}

	u.AccessToken = tok
	u.Ativo = false
	if code := do("Bearer " + tok); code != http.StatusUnauthorized {
		t.Fatalf("usuário inativo: status = %d; want 401", code)
	}
}

func withUser(r *http.Request, u *models.Usuario) *http.Request {
	return r.WithContext(WithPrincipal(r.Context(), &Principal{Usuario: u, Claims: &auth.Claims{SessaoID: "S9"}}))
}

func TestPermission(t *testing.T) {
	var calls int
	cm := &checkerMock{HasPermissionFn: func(_ context.Context, _ *models.Usuario, rota, metodo string) (bool, error) {
		calls++
		return rota == "produtos" && metodo == http.MethodGet, nil
	}}
	h := Permission(cm, "produtos", discard)(http.HandlerFunc(ok))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, withUser(httptest.NewRequest(http.MethodGet, "/api/produtos", nil), &models.Usuario{Perfil: models.PerfilEstoquista}))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("GET status = %d; want 204", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, withUser(httptest.NewRequest(http.MethodDelete, "/api/produtos/1", nil), &models.Usuario{Perfil: models.PerfilEstoquista}))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("DELETE status = %d; want 403; body=%s", rr.Code, rr.Body.String())
	}

	// administrador não consulta permissões
	calls = 0
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, withUser(httptest.NewRequest(http.MethodDelete, "/api/produtos/1", nil), &models.Usuario{Perfil: models.PerfilAdministrador}))
	if rr.Code != http.StatusNoContent || calls != 0 {
		t.Fatalf("admin: status = %d calls = %d", rr.Code, calls)
	}
}

func TestAdminOnly(t *testing.T) {
	h := AdminOnly(http.HandlerFunc(ok))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, withUser(httptest.NewRequest(http.MethodGet, "/api/logs/statistics", nil), &models.Usuario{Perfil: models.PerfilGerente}))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d; want 403", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/logs/statistics", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", rr.Code)
	}
}

func TestAudit(t *testing.T) {
	rec := &recorderMock{}
	status := http.StatusCreated
	h := Audit(rec, models.EventoEstoqueMovimento)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	u := &models.Usuario{Perfil: models.PerfilEstoquista}

	h.ServeHTTP(httptest.NewRecorder(), withUser(httptest.NewRequest(http.MethodGet, "/api/movimentacoes", nil), u))
	if len(rec.eventos) != 0 {
		t.Fatalf("GET não deve registrar evento: %#v", rec.eventos)
	}

	h.ServeHTTP(httptest.NewRecorder(), withUser(httptest.NewRequest(http.MethodPost, "/api/movimentacoes", nil), u))
	if len(rec.eventos) != 1 || rec.sessao != "S9" {
		t.Fatalf("eventos = %#v sessao = %q", rec.eventos, rec.sessao)
	}
	if e := rec.eventos[0]; e.Tipo != models.EventoEstoqueMovimento || e.Metodo != http.MethodPost || e.Status != http.StatusCreated {
		t.Fatalf("unexpected event: %#v", e)
	}

	status = http.StatusBadRequest
	h.ServeHTTP(httptest.NewRecorder(), withUser(httptest.NewRequest(http.MethodPost, "/api/movimentacoes", nil), u))
	if len(rec.eventos) != 1 {
		t.Fatalf("falha não deve registrar evento: %d", len(rec.eventos))
	}
}

func TestChain_Ordem(t *testing.T) {
	var ordem []string
	mk := func(nome string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ordem = append(ordem, nome)
				next.ServeHTTP(w, r)
			})
		}
	}
	Chain(http.HandlerFunc(ok), mk("a"), mk("b"), mk("c")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if len(ordem) != 3 || ordem[0] != "a" || ordem[2] != "c" {
		t.Fatalf("ordem = %v", ordem)
	}
}

func TestLogging_Status(t *testing.T) {
	h := Logging(discard)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("x"))
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d; want 418", rr.Code)
	}
}
