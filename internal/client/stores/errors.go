package stores

import (
	"errors"

	"github.com/dmitrijs2005/recipes/internal/client/api"
	"github.com/dmitrijs2005/recipes/internal/client/apperror"
)

// User-facing texts.
const (
	MsgLoginExists     = "login already exists"
	MsgPasswordChanged = "password changed"
	MsgSignInRequired  = "sign in first"
)

func serverMessage(err error) string {
	if m := api.Message(err); m != "" {
		return m
	}
	return err.Error()
}

func requestID(err error) string {
	var se *api.StatusError
	if errors.As(err, &se) {
		return se.RequestID
	}
	return ""
}

func authError(err error) error {
	if errors.Is(err, api.ErrUnavailable) && api.Status(err) == 0 {
		return apperror.Network(err)
	}
	return apperror.Auth(serverMessage(err), err)
}

func mutationError(err error, resource, id string) error {
	switch {
	case errors.Is(err, api.ErrUnavailable) && api.Status(err) == 0:
		return apperror.Network(err)
	case errors.Is(err, api.ErrUnauthorized):
		return &apperror.AppError{Err: apperror.ErrUnauthenticated, Message: serverMessage(err), Cause: err}
	case errors.Is(err, api.ErrNotFound):
		return notFound(resource, id, err)
	default:
		return apperror.Edit(serverMessage(err), err)
	}
}

func notFound(resource, id string, cause error) error {
	e := apperror.NotFound(resource, id)
	e.Cause = cause
	return e
}

// isDuplicateLogin reports a rejected profile update. The server answers a
// taken login with 400; 409 is accepted as well.
func isDuplicateLogin(err error) bool {
	return errors.Is(err, api.ErrConflict) || api.Status(err) == 400
}
