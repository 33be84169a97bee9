package models

import (
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DominioPadrao = "localhost"

// Permissao mapeia as ações CRUD de uma rota para os verbos HTTP.
type Permissao struct {
	Rota       string `bson:"rota" json:"rota" yaml:"rota"`
	Dominio    string `bson:"dominio" json:"dominio" yaml:"dominio"`
	Ativo      bool   `bson:"ativo" json:"ativo" yaml:"ativo"`
	Buscar     bool   `bson:"buscar" json:"buscar" yaml:"buscar"`             // GET
	Enviar     bool   `bson:"enviar" json:"enviar" yaml:"enviar"`             // POST
	Substituir bool   `bson:"substituir" json:"substituir" yaml:"substituir"` // PUT
	Modificar  bool   `bson:"modificar" json:"modificar" yaml:"modificar"`    // PATCH
	Excluir    bool   `bson:"excluir" json:"excluir" yaml:"excluir"`          // DELETE
}

// Chave identifica a permissão dentro de um grupo (rota + domínio).
func (p Permissao) Chave() string {
	return strings.ToLower(p.Rota) + "_" + p.Dominio
}

// Permite informa se a ação mapeada do método HTTP está liberada.
func (p Permissao) Permite(method string) bool {
	if !p.Ativo {
		return false
	}
	switch method {
	case http.MethodGet, http.MethodHead:
		return p.Buscar
	case http.MethodPost:
		return p.Enviar
	case http.MethodPut:
		return p.Substituir
	case http.MethodPatch:
		return p.Modificar
	case http.MethodDelete:
		return p.Excluir
	}
	return false
}

// Normalizar aplica os defaults que o cadastro exige (rota minúscula, domínio padrão).
func (p *Permissao) Normalizar() {
	p.Rota = strings.ToLower(strings.TrimSpace(p.Rota))
	if p.Dominio == "" {
		p.Dominio = DominioPadrao
	}
}

type Grupo struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Nome            string             `bson:"nome" json:"nome"`
	Descricao       string             `bson:"descricao" json:"descricao"`
	Ativo           bool               `bson:"ativo" json:"ativo"`
	Permissoes      []Permissao        `bson:"permissoes" json:"permissoes"`
	DataCriacao     time.Time          `bson:"data_criacao" json:"data_criacao"`
	DataAtualizacao time.Time          `bson:"data_atualizacao" json:"data_atualizacao"`
}

type GrupoPatch struct {
	Nome       *string
	Descricao  *string
	Ativo      *bool
	Permissoes *[]Permissao
}
