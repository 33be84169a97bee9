package service

import (
	"context"

	"github.com/Werneck0live/estoque-automotivo/internal/models"
)

type PermissionService struct {
	Grupos  GrupoLister
	Dominio string
}

// GrupoResumo é a visão de um grupo na consulta de permissões do usuário.
type GrupoResumo struct {
	ID         string             `json:"_id"`
	Nome       string             `json:"nome"`
	Ativo      bool               `json:"ativo"`
	Permissoes []models.Permissao `json:"permissoes"`
}

type PermissoesUsuario struct {
	Individuais []models.Permissao `json:"permissoesIndividuais"`
	Grupos      []GrupoResumo      `json:"grupos"`
	Efetivas    []models.Permissao `json:"permissoesEfetivas"`
}

// Efetivas junta as permissões individuais e as dos grupos ativos. Em caso de
// rota+domínio repetidos vale a primeira (individual antes de grupo).
func (s *PermissionService) Efetivas(ctx context.Context, u *models.Usuario) ([]models.Permissao, []models.Grupo, error) {
	grupos, err := s.Grupos.GetMany(ctx, u.Grupos)
	if err != nil {
		return nil, nil, err
	}

	vistas := map[string]bool{}
	out := []models.Permissao{}
	add := func(p models.Permissao) {
		p.Normalizar()
		if vistas[p.Chave()] {
			return
		}
		vistas[p.Chave()] = true
		out = append(out, p)
	}
	for _, p := range u.Permissoes {
		add(p)
	}
	for _, g := range grupos {
		if !g.Ativo {
			continue
		}
		for _, p := range g.Permissoes {
			add(p)
		}
	}
	return out, grupos, nil
}

// HasPermission verifica se o usuário pode executar o método na rota do domínio configurado.
func (s *PermissionService) HasPermission(ctx context.Context, u *models.Usuario, rota, metodo string) (bool, error) {
	perms, _, err := s.Efetivas(ctx, u)
	if err != nil {
		return false, err
	}
	alvo := models.Permissao{Rota: rota, Dominio: s.dominio()}
	alvo.Normalizar()
	for _, p := range perms {
		if p.Chave() == alvo.Chave() {
			return p.Permite(metodo), nil
		}
	}
	return false, nil
}

func (s *PermissionService) DoUsuario(ctx context.Context, u *models.Usuario) (PermissoesUsuario, error) {
	efetivas, grupos, err := s.Efetivas(ctx, u)
	if err != nil {
		return PermissoesUsuario{}, err
	}
	out := PermissoesUsuario{
		Individuais: u.Permissoes,
		Grupos:      make([]GrupoResumo, 0, len(grupos)),
		Efetivas:    efetivas,
	}
	if out.Individuais == nil {
		out.Individuais = []models.Permissao{}
	}
	for _, g := range grupos {
		out.Grupos = append(out.Grupos, GrupoResumo{ID: g.ID.Hex(), Nome: g.Nome, Ativo: g.Ativo, Permissoes: g.Permissoes})
	}
	return out, nil
}

func (s *PermissionService) dominio() string {
	if s.Dominio == "" {
		return models.DominioPadrao
	}
	return s.Dominio
}
