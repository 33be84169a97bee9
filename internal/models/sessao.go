package models

import "time"

// Tipos de evento registrados nas sessões.
const (
	EventoLogin            = "LOGIN"
	EventoLogout           = "LOGOUT"
	EventoTokenRevoke      = "TOKEN_REVOKE"
	EventoEstoqueMovimento = "ESTOQUE_MOVIMENTO"
	EventoUsuarioAcao      = "USUARIO_ACAO"
)

// EventosCriticos entram no relatório de eventos críticos.
var EventosCriticos = []string{EventoTokenRevoke, EventoEstoqueMovimento, EventoUsuarioAcao}

type UsuarioSessao struct {
	ID        string `bson:"id" json:"id"`
	Matricula string `bson:"matricula" json:"matricula"`
	Nome      string `bson:"nome" json:"nome"`
	Perfil    string `bson:"perfil" json:"perfil"`
}

type InfoSistema struct {
	IP                 string `bson:"ip" json:"ip"`
	SistemaOperacional string `bson:"sistema_operacional" json:"sistemaOperacional"`
	Navegador          string `bson:"navegador" json:"navegador"`
	UserAgent          string `bson:"user_agent" json:"userAgent"`
}

type Evento struct {
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
	Tipo      string         `bson:"tipo" json:"tipo"`
	Metodo    string         `bson:"metodo,omitempty" json:"metodo,omitempty"`
	Rota      string         `bson:"rota,omitempty" json:"rota,omitempty"`
	IP        string         `bson:"ip,omitempty" json:"ip,omitempty"`
	Status    int            `bson:"status,omitempty" json:"status,omitempty"`
	Dados     map[string]any `bson:"dados,omitempty" json:"dados,omitempty"`
}

// Sessao agrupa os eventos de um login até o logout.
type Sessao struct {
	ID              string        `bson:"_id" json:"id"`
	Usuario         UsuarioSessao `bson:"usuario" json:"usuario"`
	Sistema         InfoSistema   `bson:"sistema" json:"informacaoSistema"`
	Inicio          time.Time     `bson:"inicio" json:"inicioSessao"`
	Fim             *time.Time    `bson:"fim,omitempty" json:"fimSessao,omitempty"`
	DuracaoSegundos int64         `bson:"duracao_segundos,omitempty" json:"duracaoSessao,omitempty"`
	Eventos         []Evento      `bson:"eventos" json:"eventos"`
}

type Estatisticas struct {
	TotalLogins          int `json:"totalLogins"`
	TotalLogouts         int `json:"totalLogouts"`
	MovimentacoesEstoque int `json:"movimentacoesEstoque"`
	EventosCriticos      int `json:"eventosCriticos"`
	UsuariosAtivos       int `json:"usuariosAtivos"`
}

// EventoUsuario é um evento isolado com a sessão e o usuário de origem.
type EventoUsuario struct {
	Sessao  string        `bson:"sessao" json:"sessao"`
	Usuario UsuarioSessao `bson:"usuario" json:"usuario"`
	Evento  Evento        `bson:"evento" json:"evento"`
}
