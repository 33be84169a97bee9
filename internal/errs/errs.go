// Package errs define o erro de aplicação que carrega o status HTTP e a
// mensagem devolvida ao cliente no envelope padrão.
package errs

import (
	"errors"
	"net/http"
)

// StatusTokenExpired é o código (não padronizado) usado quando o refresh token expirou.
const StatusTokenExpired = 498

// Tipos de erro expostos no envelope.
const (
	TipoValidacao     = "validationError"
	TipoRegraNegocio  = "businessRuleViolation"
	TipoNaoEncontrado = "resourceNotFound"
	TipoConflito      = "conflictError"
	TipoProibido      = "permissionError"
	TipoAutenticacao  = "authError"
	TipoTokenExpirado = "tokenExpiredError"
	TipoInterno       = "serverError"
)

// FieldError é um erro associado a um campo do payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HTTPError é o erro devolvido pelos services/handlers.
type HTTPError struct {
	Status   int
	Tipo     string
	Campo    string
	Mensagem string
	Detalhes []FieldError
}

func (e *HTTPError) Error() string { return e.Mensagem }

// Fields devolve os detalhes; sem detalhes, usa o próprio campo/mensagem.
func (e *HTTPError) Fields() []FieldError {
	if len(e.Detalhes) > 0 {
		return e.Detalhes
	}
	if e.Campo != "" {
		return []FieldError{{Field: e.Campo, Message: e.Mensagem}}
	}
	return []FieldError{}
}

func New(status int, tipo, campo, msg string) *HTTPError {
	return &HTTPError{Status: status, Tipo: tipo, Campo: campo, Mensagem: msg}
}

func BadRequest(campo, msg string) *HTTPError {
	return New(http.StatusBadRequest, TipoValidacao, campo, msg)
}

func RegraNegocio(campo, msg string) *HTTPError {
	return New(http.StatusBadRequest, TipoRegraNegocio, campo, msg)
}

func NotFound(campo, msg string) *HTTPError {
	return New(http.StatusNotFound, TipoNaoEncontrado, campo, msg)
}

func Conflict(campo, msg string) *HTTPError {
	return New(http.StatusConflict, TipoConflito, campo, msg)
}

func Forbidden(campo, msg string) *HTTPError {
	return New(http.StatusForbidden, TipoProibido, campo, msg)
}

func Unauthorized(campo, msg string) *HTTPError {
	return New(http.StatusUnauthorized, TipoAutenticacao, campo, msg)
}

func TokenExpired(campo, msg string) *HTTPError {
	return New(StatusTokenExpired, TipoTokenExpirado, campo, msg)
}

// Internal não repassa a causa ao cliente; quem chama deve logar o erro original.
func Internal() *HTTPError {
	return New(http.StatusInternalServerError, TipoInterno, "", "Erro interno do servidor")
}

// Validation agrupa os erros de campo de uma validação de payload.
func Validation(details []FieldError) *HTTPError {
	e := New(http.StatusBadRequest, TipoValidacao, "", "Falha na validação dos dados")
	e.Detalhes = details
	return e
}

// From extrai um *HTTPError da cadeia; qualquer outro erro vira 500.
func From(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	return Internal()
}
