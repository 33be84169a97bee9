package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/broker"
	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/models"
	"github.com/Werneck0live/estoque-automotivo/internal/repository"
)

type MovimentacaoStore interface {
	Create(ctx context.Context, m *models.Movimentacao) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Movimentacao, error)
	List(ctx context.Context, f repository.MovimentacaoFiltro, page, limit int64) (models.Page[models.Movimentacao], error)
	Update(ctx context.Context, id primitive.ObjectID, p models.MovimentacaoPatch) (*models.Movimentacao, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// EstoqueStore é a parte do repositório de produtos usada na baixa/entrada de estoque.
type EstoqueStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Produto, error)
	AjustarEstoque(ctx context.Context, id primitive.ObjectID, delta int, marcarEntrada bool) (*models.Produto, error)
	RemoverEstoque(ctx context.Context, id primitive.ObjectID, q int) (int, error)
}

type FornecedorGetter interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Fornecedor, error)
}

type MovimentacaoService struct {
	Movs         MovimentacaoStore
	Produtos     EstoqueStore
	Fornecedores FornecedorGetter // opcional: preenche nome_fornecedor
	Pub          EventPublisher

	EditWindow   time.Duration
	DeleteWindow time.Duration

	Now func() time.Time
	Log *slog.Logger
}

func (s *MovimentacaoService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// lancado guarda o que já foi aplicado no estoque para poder desfazer.
type lancado struct {
	produto    primitive.ObjectID
	quantidade int
	tipo       string
}

func (s *MovimentacaoService) Create(ctx context.Context, m *models.Movimentacao) (*models.Movimentacao, error) {
	if len(m.Produtos) == 0 {
		return nil, errs.BadRequest("produtos", "A movimentação deve conter pelo menos um produto.")
	}
	if !models.TipoMovimentacaoValido(m.Tipo) {
		return nil, errs.BadRequest("tipo", "Tipo de movimentação inválido. Use 'entrada' ou 'saida'.")
	}
	if m.DataMovimentacao.IsZero() {
		m.DataMovimentacao = s.now()
	}

	itens, afetados, feitos, err := s.aplicar(ctx, m.Tipo, m.Produtos)
	if err != nil {
		return nil, err
	}
	m.Produtos = itens

	if err := s.Movs.Create(ctx, m); err != nil {
		s.desfazer(ctx, feitos)
		return nil, err
	}

	publish(ctx, s.Pub, logger(s.Log), broker.NovoEvento(broker.MovimentacaoCriada, "movimentacao", m.ID.Hex(),
		fmt.Sprintf("Movimentação de %s registrada", m.Tipo), m))
	if m.Tipo == models.TipoSaida {
		s.alertarEstoqueBaixo(ctx, afetados)
	}
	return m, nil
}

func (s *MovimentacaoService) Update(ctx context.Context, id string, p models.MovimentacaoPatch) (*models.Movimentacao, error) {
	oid, err := repository.ObjectID(id)
	if err != nil {
		return nil, errs.BadRequest("id", "ID da movimentação inválido.")
	}
	if p.Vazio() {
		return nil, errs.BadRequest("", "Nenhum campo informado para atualização.")
	}
	if p.Tipo != nil && !models.TipoMovimentacaoValido(*p.Tipo) {
		return nil, errs.BadRequest("tipo", "Tipo de movimentação inválido. Use 'entrada' ou 'saida'.")
	}
	if p.Produtos != nil && len(p.Produtos) == 0 {
		return nil, errs.BadRequest("produtos", "A movimentação deve conter pelo menos um produto.")
	}

	orig, err := s.get(ctx, oid)
	if err != nil {
		return nil, err
	}

	if p.AlteraEstoque() {
		idade := s.now().Sub(orig.DataMovimentacao)
		if idade < 0 {
			idade = -idade
		}
		if idade > s.EditWindow {
			return nil, errs.New(http.StatusForbidden, errs.TipoRegraNegocio, "data_movimentacao",
				fmt.Sprintf("Não é possível alterar produtos ou tipo de movimentações com mais de %s.", horas(s.EditWindow)))
		}

		novoTipo := orig.Tipo
		if p.Tipo != nil {
			novoTipo = *p.Tipo
		}
		novosItens := orig.Produtos
		if p.Produtos != nil {
			novosItens = p.Produtos
		}

		revertidos, err := s.reverter(ctx, orig.Tipo, orig.Produtos)
		if err != nil {
			return nil, err
		}
		itens, prods, feitos, err := s.aplicar(ctx, novoTipo, novosItens)
		if err != nil {
			// volta ao estado original
			s.desfazer(ctx, revertidos)
			return nil, err
		}
		p.Produtos = itens

		upd, err := s.Movs.Update(ctx, oid, p)
		if err != nil {
			s.desfazer(ctx, feitos)
			s.desfazer(ctx, revertidos)
			return nil, s.notFound(err)
		}
		s.publicarAtualizada(ctx, upd)
		if novoTipo == models.TipoSaida {
			s.alertarEstoqueBaixo(ctx, prods)
		}
		return upd, nil
	}

	upd, err := s.Movs.Update(ctx, oid, p)
	if err != nil {
		return nil, s.notFound(err)
	}
	s.publicarAtualizada(ctx, upd)
	return upd, nil
}

func (s *MovimentacaoService) Delete(ctx context.Context, id string) error {
	oid, err := repository.ObjectID(id)
	if err != nil {
		return errs.BadRequest("id", "ID da movimentação inválido.")
	}
	m, err := s.get(ctx, oid)
	if err != nil {
		return err
	}

	dias := int(s.now().Sub(m.DataMovimentacao) / (24 * time.Hour))
	if limite := int(s.DeleteWindow / (24 * time.Hour)); dias > limite {
		return errs.New(http.StatusForbidden, errs.TipoRegraNegocio, "data_movimentacao",
			fmt.Sprintf("Não é possível deletar movimentações com mais de %d dias.", limite))
	}

	revertidos, err := s.reverter(ctx, m.Tipo, m.Produtos)
	if err != nil {
		return err
	}
	if err := s.Movs.Delete(ctx, oid); err != nil {
		s.desfazer(ctx, revertidos)
		return s.notFound(err)
	}

	publish(ctx, s.Pub, logger(s.Log), broker.NovoEvento(broker.MovimentacaoRemovida, "movimentacao", oid.Hex(),
		"Movimentação removida e estoque revertido", nil))
	return nil
}

func (s *MovimentacaoService) Get(ctx context.Context, id string) (*models.Movimentacao, error) {
	oid, err := repository.ObjectID(id)
	if err != nil {
		return nil, errs.BadRequest("id", "ID da movimentação inválido.")
	}
	return s.get(ctx, oid)
}

func (s *MovimentacaoService) List(ctx context.Context, f repository.MovimentacaoFiltro, page, limit int64) (models.Page[models.Movimentacao], error) {
	if f.Tipo != "" && !models.TipoMovimentacaoValido(f.Tipo) {
		return models.Page[models.Movimentacao]{}, errs.BadRequest("tipo", "Tipo de movimentação inválido. Use 'entrada' ou 'saida'.")
	}
	if f.DataInicio != nil && f.DataFim != nil && f.DataInicio.After(*f.DataFim) {
		return models.Page[models.Movimentacao]{}, errs.BadRequest("data_inicio", "A data inicial deve ser anterior à data final.")
	}
	return s.Movs.List(ctx, f, page, limit)
}

func (s *MovimentacaoService) BuscarPorTipo(ctx context.Context, tipo string, page, limit int64) (models.Page[models.Movimentacao], error) {
	if tipo == "" {
		return models.Page[models.Movimentacao]{}, errs.BadRequest("tipo", "O tipo de movimentação é obrigatório.")
	}
	return s.List(ctx, repository.MovimentacaoFiltro{Tipo: tipo}, page, limit)
}

// BuscarPorPeriodo recebe datas AAAA-MM-DD (ou RFC3339); o dia final é inclusivo.
func (s *MovimentacaoService) BuscarPorPeriodo(ctx context.Context, inicio, fim string, page, limit int64) (models.Page[models.Movimentacao], error) {
	if inicio == "" || fim == "" {
		return models.Page[models.Movimentacao]{}, errs.BadRequest("data_inicio", "As datas inicial e final são obrigatórias.")
	}
	ini, err := ParseData(inicio, false)
	if err != nil {
		return models.Page[models.Movimentacao]{}, errs.BadRequest("data_inicio", "Data inicial inválida.")
	}
	end, err := ParseData(fim, true)
	if err != nil {
		return models.Page[models.Movimentacao]{}, errs.BadRequest("data_fim", "Data final inválida.")
	}
	return s.List(ctx, repository.MovimentacaoFiltro{DataInicio: &ini, DataFim: &end}, page, limit)
}

func (s *MovimentacaoService) BuscarPorProduto(ctx context.Context, produto string, page, limit int64) (models.Page[models.Movimentacao], error) {
	if produto == "" {
		return models.Page[models.Movimentacao]{}, errs.BadRequest("produto", "O produto é obrigatório.")
	}
	return s.List(ctx, repository.MovimentacaoFiltro{Produto: produto}, page, limit)
}

func (s *MovimentacaoService) BuscarPorUsuario(ctx context.Context, usuario string, page, limit int64) (models.Page[models.Movimentacao], error) {
	if usuario == "" {
		return models.Page[models.Movimentacao]{}, errs.BadRequest("usuario", "O usuário é obrigatório.")
	}
	return s.List(ctx, repository.MovimentacaoFiltro{Usuario: usuario}, page, limit)
}

func (s *MovimentacaoService) get(ctx context.Context, oid primitive.ObjectID) (*models.Movimentacao, error) {
	m, err := s.Movs.GetByID(ctx, oid)
	if err != nil {
		return nil, s.notFound(err)
	}
	return m, nil
}

func (s *MovimentacaoService) notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errs.NotFound("id", "Movimentação não encontrada.")
	}
	return err
}

// aplicar lança os itens no estoque; se um item falhar, desfaz os anteriores.
func (s *MovimentacaoService) aplicar(ctx context.Context, tipo string, itens []models.ItemMovimentacao) ([]models.ItemMovimentacao, []models.Produto, []lancado, error) {
	out := make([]models.ItemMovimentacao, 0, len(itens))
	afetados := make([]models.Produto, 0, len(itens))
	feitos := make([]lancado, 0, len(itens))

	for _, it := range itens {
		if it.QuantidadeProdutos <= 0 {
			s.desfazer(ctx, feitos)
			return nil, nil, nil, errs.BadRequest("quantidade_produtos", "A quantidade deve ser maior que zero.")
		}
		p, err := s.Produtos.GetByID(ctx, it.ProdutoRef)
		if err != nil {
			s.desfazer(ctx, feitos)
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil, nil, errs.BadRequest("produto_ref", "Produto não encontrado: "+it.ProdutoRef.Hex())
			}
			return nil, nil, nil, err
		}

		delta := it.QuantidadeProdutos
		if tipo == models.TipoSaida {
			delta = -delta
		}
		atual, err := s.Produtos.AjustarEstoque(ctx, p.ID, delta, tipo == models.TipoEntrada)
		if err != nil {
			s.desfazer(ctx, feitos)
			switch {
			case errors.Is(err, repository.ErrEstoqueInsuficiente):
				disp := p.Estoque
				if cur, gErr := s.Produtos.GetByID(ctx, p.ID); gErr == nil {
					disp = cur.Estoque
				}
				return nil, nil, nil, errs.RegraNegocio("quantidade_produtos",
					fmt.Sprintf("Estoque insuficiente para o produto %s. Disponível: %d.", p.NomeProduto, disp))
			case errors.Is(err, repository.ErrNotFound):
				return nil, nil, nil, errs.BadRequest("produto_ref", "Produto não encontrado: "+it.ProdutoRef.Hex())
			}
			return nil, nil, nil, err
		}
		feitos = append(feitos, lancado{produto: p.ID, quantidade: it.QuantidadeProdutos, tipo: tipo})
		afetados = append(afetados, *atual)
		out = append(out, s.snapshot(ctx, it, p))
	}
	return out, afetados, feitos, nil
}

// snapshot completa o item com os dados do produto no momento da movimentação.
func (s *MovimentacaoService) snapshot(ctx context.Context, it models.ItemMovimentacao, p *models.Produto) models.ItemMovimentacao {
	if it.CodigoProduto == "" {
		it.CodigoProduto = p.CodigoProduto
	}
	if it.NomeProduto == "" {
		it.NomeProduto = p.NomeProduto
	}
	if it.Preco == 0 {
		it.Preco = p.Preco
	}
	if it.Custo == 0 {
		it.Custo = p.Custo
	}
	if it.FornecedorID.IsZero() {
		it.FornecedorID = p.FornecedorID
	}
	if it.NomeFornecedor == "" && s.Fornecedores != nil && !it.FornecedorID.IsZero() {
		if f, err := s.Fornecedores.GetByID(ctx, it.FornecedorID); err == nil {
			it.NomeFornecedor = f.NomeFornecedor
		}
	}
	return it
}

// desfazer estorna lançamentos recém-aplicados (ordem inversa).
func (s *MovimentacaoService) desfazer(ctx context.Context, feitos []lancado) {
	for i := len(feitos) - 1; i >= 0; i-- {
		f := feitos[i]
		var err error
		if f.tipo == models.TipoSaida {
			_, err = s.Produtos.AjustarEstoque(ctx, f.produto, f.quantidade, false)
		} else {
			_, err = s.Produtos.RemoverEstoque(ctx, f.produto, f.quantidade)
		}
		if err != nil {
			logger(s.Log).Error("estoque_compensacao_falhou", "produto", f.produto.Hex(), "quantidade", f.quantidade, "err", err)
		}
	}
}

// reverter cancela o efeito de uma movimentação gravada: saída devolve ao
// estoque e entrada retira (sem ficar negativo). Produto removido é ignorado.
// Devolve o que foi de fato movido, no formato que desfazer entende; se um
// item falhar, os já revertidos são restaurados.
func (s *MovimentacaoService) reverter(ctx context.Context, tipo string, itens []models.ItemMovimentacao) ([]lancado, error) {
	feitos := make([]lancado, 0, len(itens))
	for _, it := range itens {
		var (
			l   lancado
			err error
		)
		if tipo == models.TipoSaida {
			_, err = s.Produtos.AjustarEstoque(ctx, it.ProdutoRef, it.QuantidadeProdutos, false)
			l = lancado{produto: it.ProdutoRef, quantidade: it.QuantidadeProdutos, tipo: models.TipoEntrada}
		} else {
			var removido int
			removido, err = s.Produtos.RemoverEstoque(ctx, it.ProdutoRef, it.QuantidadeProdutos)
			l = lancado{produto: it.ProdutoRef, quantidade: removido, tipo: models.TipoSaida}
		}
		if errors.Is(err, repository.ErrNotFound) {
			logger(s.Log).Warn("estoque_reversao_produto_ausente", "produto", it.ProdutoRef.Hex())
			continue
		}
		if err != nil {
			s.desfazer(ctx, feitos)
			return nil, err
		}
		if l.quantidade > 0 {
			feitos = append(feitos, l)
		}
	}
	return feitos, nil
}

func (s *MovimentacaoService) publicarAtualizada(ctx context.Context, m *models.Movimentacao) {
	publish(ctx, s.Pub, logger(s.Log), broker.NovoEvento(broker.MovimentacaoAtualizada, "movimentacao", m.ID.Hex(),
		"Movimentação atualizada", m))
}

func (s *MovimentacaoService) alertarEstoqueBaixo(ctx context.Context, produtos []models.Produto) {
	for i := range produtos {
		p := produtos[i]
		if !p.EstoqueBaixo() {
			continue
		}
		publish(ctx, s.Pub, logger(s.Log), broker.NovoEvento(broker.EstoqueBaixo, "produto", p.ID.Hex(),
			fmt.Sprintf("Produto %s com estoque %d (mínimo %d)", p.NomeProduto, p.Estoque, p.EstoqueMin),
			map[string]any{"estoque": p.Estoque, "estoque_min": p.EstoqueMin, "codigo_produto": p.CodigoProduto}))
	}
}

func horas(d time.Duration) string {
	return fmt.Sprintf("%d horas", int(d.Hours()))
}

// ParseData aceita AAAA-MM-DD ou RFC3339. Com fimDoDia, uma data sem hora
// cobre o dia inteiro.
func ParseData(s string, fimDoDia bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if fimDoDia {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
