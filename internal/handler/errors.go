package handler

import (
	"errors"

	"go-admin-console/internal/middleware"
	"go-admin-console/internal/query"
	"go-admin-console/internal/service"
	"go-admin-console/pkg/jwt"
	"go-admin-console/pkg/response"
	"go-admin-console/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Responder writes envelopes and maps service errors to HTTP statuses.
type Responder struct {
	writer *response.Writer
	log    zerolog.Logger
}

func NewResponder(writer *response.Writer, log zerolog.Logger) *Responder {
	return &Responder{writer: writer, log: log}
}

func (r *Responder) OK(c *fiber.Ctx, data interface{}) error {
	return r.writer.Send(c, response.Options{Message: MsgSuccess, Data: data})
}

func (r *Responder) Created(c *fiber.Ctx, data interface{}) error {
	return r.writer.Send(c, response.Options{StatusCode: fiber.StatusCreated, Message: MsgCreated, Data: data})
}

func (r *Responder) List(c *fiber.Ctx, data interface{}, count int64) error {
	return r.writer.Send(c, response.Options{Message: MsgSuccess, Data: data, Count: &count})
}

// BadBody reports a body that could not be parsed.
func (r *Responder) BadBody(c *fiber.Ctx, err error) error {
	return r.writer.Send(c, response.Options{StatusCode: fiber.StatusBadRequest, Message: MsgBadRequest, Error: err.Error()})
}

// BadParam reports a malformed path parameter.
func (r *Responder) BadParam(c *fiber.Ctx, name string) error {
	return r.writer.Send(c, response.Options{StatusCode: fiber.StatusBadRequest, Message: MsgBadRequest, Error: "invalid " + name})
}

// Fail maps err to a status code and writes it. Unknown errors are logged and
// answered with a generic 500.
func (r *Responder) Fail(c *fiber.Ctx, err error) error {
	status, message, detail := r.classify(err)
	if status == fiber.StatusInternalServerError {
		r.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}
	return r.writer.Send(c, response.Options{StatusCode: status, Message: message, Error: detail})
}

func (r *Responder) classify(err error) (int, string, interface{}) {
	var verr *validator.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, MsgValidationError, verr.Fields
	case errors.Is(err, query.ErrInvalidQuery),
		errors.Is(err, service.ErrEmptyPermissionUpdate),
		errors.Is(err, service.ErrInvalidRole):
		return fiber.StatusBadRequest, MsgBadRequest, err.Error()

	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, MsgInvalidCredentials, nil
	case errors.Is(err, jwt.ErrExpiredToken):
		return fiber.StatusUnauthorized, MsgTokenExpired, nil
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrMissingToken):
		return fiber.StatusUnauthorized, MsgTokenInvalid, nil

	case errors.Is(err, middleware.ErrForbidden):
		return fiber.StatusForbidden, MsgForbidden, nil

	case errors.Is(err, service.ErrUserNotFound):
		return fiber.StatusNotFound, MsgUserNotFound, nil
	case errors.Is(err, service.ErrPermissionNotFound):
		return fiber.StatusNotFound, MsgDataNotFound, nil
	case errors.Is(err, service.ErrProductNotFound):
		return fiber.StatusNotFound, MsgProductNotFound, nil

	case errors.Is(err, service.ErrEmailExists):
		return fiber.StatusConflict, MsgUserAlreadyExists, nil
	case errors.Is(err, service.ErrStockConstraintFailed):
		return fiber.StatusConflict, MsgStockRejected, nil

	case errors.Is(err, service.ErrNegativeStockAllowed), errors.Is(err, service.ErrAuditEntryMissing):
		return fiber.StatusInternalServerError, MsgTriggerCheckFailed, err.Error()
	}
	return fiber.StatusInternalServerError, MsgInternalError, nil
}
