// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков. Каждый ответ сервиса имеет
// форму {status, data, message}, где status дублирует HTTP-код ответа.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON-ответа сервера.
type Response struct {
	Status  int    `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// OK возвращает успешный Response с данными и сообщением.
func OK(data any, msg string) Response {
	return Response{
		Status:  http.StatusOK,
		Data:    data,
		Message: msg,
	}
}

// Err возвращает Response с ошибкой, код должен совпадать с HTTP-кодом ответа.
func Err(code int, msg string) Response {
	return Response{
		Status:  code,
		Message: msg,
	}
}

// ValidationError формирует Response со статусом 400 на основе ошибок валидации.
// Каждое нарушение превращается в человеко-читаемый текст, объединенный через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of the allowed values", err.Field()))
		case "numeric":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status:  http.StatusBadRequest,
		Message: strings.Join(errsMsgs, ", "),
	}
}
