package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/naca456/internal/namelist"
)

const maxBodyBytes = 1 << 20

func writeBadRequest(c *echo.Context, err error) error {
	var inv invalidRequestError
	if errors.As(err, &inv) {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", inv.msg, inv.param, "")
	}
	return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "", "")
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg, "", "")
}

func writeError(c *echo.Context, status int, errType, msg, param, code string) error {
	return c.JSON(status, map[string]any{
		"error": ResponseError{
			Message: msg,
			Type:    errType,
			Code:    code,
			Param:   param,
		},
	})
}

func writeValidationError(c *echo.Context, verr *namelist.ValidationError) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"error": ResponseError{
			Message: verr.Error(),
			Type:    "validation_error",
			Details: verr.Fields,
		},
	})
}

func writeText(c *echo.Context, status int, contentType, body string) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, contentType)
	res.WriteHeader(status)
	_, err := io.WriteString(res, body)
	return err
}

func decodeJSONInto(r io.Reader, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return newInvalidRequest("", "request body is empty")
		}
		return newInvalidRequest("", fmt.Sprintf("malformed JSON: %v", err))
	}
	return nil
}

// decodeParams overlays a JSON object of namelist keys on the defaults.
func decodeParams(r io.Reader) (namelist.Params, error) {
	p := namelist.Defaults()
	if err := decodeJSONInto(r, &p); err != nil {
		return p, err
	}
	return p, nil
}

// decodeNamelistBody accepts either a JSON object or a Fortran namelist deck,
// chosen by the request content type.
func decodeNamelistBody(c *echo.Context) (namelist.Params, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ct, "text/plain") {
		p, err := namelist.Decode(io.LimitReader(c.Request().Body, maxBodyBytes))
		if err != nil {
			return p, newInvalidRequest("", err.Error())
		}
		return p, nil
	}
	return decodeParams(c.Request().Body)
}

func queryFloat(c *echo.Context, name string, def float64) (float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, newInvalidRequest(name, fmt.Sprintf("%s must be a number", name))
	}
	return v, nil
}

func queryInt(c *echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, newInvalidRequest(name, fmt.Sprintf("%s must be a non-negative integer", name))
	}
	return v, nil
}
