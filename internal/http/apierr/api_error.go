package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	govalidator "github.com/go-playground/validator/v10"

	"github.com/tuanvumaihuynh/shop-admin/internal/apperr"
	"github.com/tuanvumaihuynh/shop-admin/pkg/validator"
	"github.com/tuanvumaihuynh/shop-admin/pkg/zerror"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the error response for the API.
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details *[]FieldError `json:"details,omitempty"`

	// StatusCode is the status code for the error response.
	StatusCode int `json:"-"`
}

// InvalidParamError reports a request parameter that could not be bound.
type InvalidParamError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamError) Unwrap() error {
	return e.Err
}

func New(err error) ErrorResponse {
	return errorToErrorResponse(err)
}

var InternalServerErr = ErrorResponse{
	Code:       "internalServerError",
	Message:    "an unknown error occurred",
	StatusCode: http.StatusInternalServerError,
}

func errorToErrorResponse(err error) ErrorResponse {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return ErrorResponse{
			Code:       zErr.Code(),
			Message:    zErr.Msg(),
			StatusCode: ZErrorStatusToHTTPStatus(zErr.Status()),
		}
	}

	var validationErrs govalidator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]FieldError, len(validationErrs))
		for i, fe := range validationErrs {
			details[i] = FieldError{
				Field:   fieldPath(fe.Namespace()),
				Message: validator.ValidationErrorMessage(fe),
			}
		}

		return validationFailed("validation error", &details)
	}

	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		details := []FieldError{requestErrorDetail(reqErr)}
		return validationFailed("request does not match the api contract", &details)
	}

	var paramErr *InvalidParamError
	if errors.As(err, &paramErr) {
		details := []FieldError{{Field: paramErr.ParamName, Message: paramErr.Err.Error()}}
		return validationFailed(paramErr.Error(), &details)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return validationFailed("malformed request body", nil)
	}

	return InternalServerErr
}

func validationFailed(msg string, details *[]FieldError) ErrorResponse {
	return ErrorResponse{
		Code:       apperr.ValidationErrorCode,
		Message:    msg,
		Details:    details,
		StatusCode: http.StatusBadRequest,
	}
}

// fieldPath drops the struct name from a validator namespace, so
// "CreateOrderParams.items[0].quantity" becomes "items[0].quantity".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func requestErrorDetail(reqErr *openapi3filter.RequestError) FieldError {
	detail := FieldError{Field: "body", Message: reqErr.Reason}
	if reqErr.Parameter != nil {
		detail.Field = reqErr.Parameter.Name
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(reqErr.Err, &schemaErr) {
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			detail.Field = strings.Join(pointer, ".")
		}
		detail.Message = schemaErr.Reason
	}

	if detail.Message == "" && reqErr.Err != nil {
		detail.Message = reqErr.Err.Error()
	}

	return detail
}

func ZErrorStatusToHTTPStatus(status zerror.Status) int {
	switch status {
	case zerror.StatusUnauthorized:
		return http.StatusUnauthorized
	case zerror.StatusForbidden:
		return http.StatusForbidden
	case zerror.StatusNotFound:
		return http.StatusNotFound
	case zerror.StatusUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case zerror.StatusConflict:
		return http.StatusConflict
	case zerror.StatusTooManyRequests:
		return http.StatusTooManyRequests
	case zerror.StatusBadRequest:
		return http.StatusBadRequest
	case zerror.StatusValidationFailed:
		return http.StatusBadRequest
	case zerror.StatusUnknown, zerror.StatusInternalServerError:
		return http.StatusInternalServerError
	case zerror.StatusTimeout:
		return http.StatusGatewayTimeout
	case zerror.StatusNotImplemented:
		return http.StatusNotImplemented
	case zerror.StatusBadGateway:
		return http.StatusBadGateway
	case zerror.StatusServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
