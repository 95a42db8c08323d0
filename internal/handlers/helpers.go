package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/payformhq/payform/internal/services"
	xhttp "github.com/payformhq/payform/pkg/http"
)

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is treated as a bad request, matching the validation
// errors the services hand back.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, services.ErrFormNotFound), errors.Is(err, services.ErrUserNotFound):
		writeError(ctx, 404, err.Error())
	case errors.Is(err, services.ErrForbidden):
		writeError(ctx, 403, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		writeError(ctx, 409, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(ctx, 401, err.Error())
	default:
		writeError(ctx, 400, err.Error())
	}
}

// routeParam reads a named path segment captured by the router.
func routeParam(ctx *xhttp.RequestCtx, name string) string {
	if v, ok := ctx.UserValue(name).(string); ok {
		return v
	}
	return ""
}

func routeParamInt64(ctx *xhttp.RequestCtx, name string) (int64, error) {
	return strconv.ParseInt(routeParam(ctx, name), 10, 64)
}
