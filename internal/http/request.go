package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/tuanvumaihuynh/shop-admin/internal/apperr"
	"github.com/tuanvumaihuynh/shop-admin/internal/http/apierr"
)

const maxBodyBytes = 1 << 20 // 1 MB

// bindQuery binds the optional query parameter name into dest, leaving dest
// untouched when the parameter is absent.
func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return &apierr.InvalidParamError{ParamName: name, Err: err}
	}
	return nil
}

// pathID binds the {id} path parameter.
func pathID(r *http.Request) (string, error) {
	var id string
	if err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	}); err != nil {
		return "", &apierr.InvalidParamError{ParamName: "id", Err: err}
	}
	return id, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.ValidationErr.WithMsg("request body is required")
		}
		return apperr.ValidationErr.WrapParent(err).WithMsg("malformed request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}
