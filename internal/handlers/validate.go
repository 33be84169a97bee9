package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/estoque-automotivo/internal/auth"
	"github.com/Werneck0live/estoque-automotivo/internal/errs"
	"github.com/Werneck0live/estoque-automotivo/internal/utils"
)

var nomeGrupoRe = regexp.MustCompile(`^[\p{L}0-9 _-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// erros apontam o nome do campo no JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		return utils.ValidateCNPJ(utils.SanitizeCNPJ(fl.Field().String()))
	})
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})
	_ = v.RegisterValidation("senha_forte", func(fl validator.FieldLevel) bool {
		return auth.SenhaForte(fl.Field().String())
	})
	_ = v.RegisterValidation("nome_grupo", func(fl validator.FieldLevel) bool {
		return nomeGrupoRe.MatchString(fl.Field().String())
	})
	return v
}

// validar roda as tags do DTO e converte as falhas em erros de campo.
func validar(dto any) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs.BadRequest("", err.Error())
	}
	det := make([]errs.FieldError, 0, len(ve))
	for _, fe := range ve {
		det = append(det, errs.FieldError{Field: campo(fe), Message: mensagem(fe)})
	}
	return errs.Validation(det)
}

// campo devolve o caminho sem o nome do DTO: "endereco[0].cep".
func campo(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func mensagem(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Deve ter no mínimo %s caracteres", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Deve ter no mínimo %s item(ns)", fe.Param())
		}
		return fmt.Sprintf("Deve ser no mínimo %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Deve ter no máximo %s caracteres", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Deve ter no máximo %s item(ns)", fe.Param())
		}
		return fmt.Sprintf("Deve ser no máximo %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Deve ser maior ou igual a %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Deve ser maior que %s", fe.Param())
	case "len":
		return fmt.Sprintf("Deve ter exatamente %s caracteres", fe.Param())
	case "oneof":
		return "Deve ser um de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "E-mail inválido"
	case "numeric":
		return "Deve conter apenas números"
	case "alphanum":
		return "Deve conter apenas letras e números"
	case "cnpj":
		return "CNPJ inválido"
	case "objectid":
		return "ID inválido"
	case "senha_forte":
		return "A senha deve ter no mínimo 8 caracteres, incluindo letra maiúscula, letra minúscula e número."
	case "nome_grupo":
		return "Nome deve conter apenas letras, números, espaços, hífen ou sublinhado"
	case "datetime":
		return "Data inválida, use o formato " + fe.Param()
	}
	if fe.Param() != "" {
		return fmt.Sprintf("Inválido (%s=%s)", fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("Inválido (%s)", fe.Tag())
}
