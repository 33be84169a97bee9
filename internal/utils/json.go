package utils

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Werneck0live/estoque-automotivo/internal/errs"
)

// Envelope é o formato único de resposta da API (sucesso e erro).
type Envelope struct {
	Error   bool              `json:"error"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    any               `json:"data"`
	Errors  []errs.FieldError `json:"errors"`
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func Success(w http.ResponseWriter, code int, message string, data any) {
	if message == "" {
		message = http.StatusText(code)
	}
	WriteJSON(w, code, Envelope{Code: code, Message: message, Data: data, Errors: []errs.FieldError{}})
}

// Fail serializa qualquer erro no envelope; erros sem status viram 500 e são logados.
func Fail(w http.ResponseWriter, err error) {
	he := errs.From(err)
	if he.Status == http.StatusInternalServerError {
		slog.Error("request_failed", "err", err)
	}
	WriteJSON(w, he.Status, Envelope{Error: true, Code: he.Status, Message: he.Mensagem, Errors: he.Fields()})
}

/*
DecodeStrict decodifica JSON rejeitando chaves desconhecidas
e garantindo que exista exatamente UM objeto JSON.
*/
func DecodeStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		// ex.: json: unknown field "foo"
		return err
	}
	if dec.More() {
		return errors.New("unexpected additional JSON content")
	}
	return nil
}

// DecodeBody aplica DecodeStrict e converte a falha em 400.
func DecodeBody(r *http.Request, dst any) error {
	if err := DecodeStrict(r.Body, dst); err != nil {
		return errs.BadRequest("body", "JSON inválido: "+err.Error())
	}
	return nil
}

func MethodNotAllowed(w http.ResponseWriter) {
	Fail(w, errs.New(http.StatusMethodNotAllowed, errs.TipoValidacao, "", "Método não permitido"))
}

func NotFound(w http.ResponseWriter) {
	Fail(w, errs.NotFound("", "Rota não encontrada"))
}
