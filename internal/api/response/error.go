package response

import (
	"ctchen222/N-In-A-Row/internal/bot"
	"ctchen222/N-In-A-Row/internal/game"
	"ctchen222/N-In-A-Row/internal/session"
	"errors"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("missing or invalid session token")
	ErrForbidden    = errors.New("token does not grant access to this session")
)

type Error struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Extras  string `json:"extras"`
}

func (e Error) Error() string {
	return e.Extras
}

func NewError(success bool, code int, message string) Error {
	return Error{
		Success: success,
		Code:    code,
		Extras:  message,
	}
}

// FromError maps a domain error to its HTTP status. Unknown errors become a
// 500 without leaking their text.
func FromError(err error) Error {
	var e Error
	switch {
	case errors.As(err, &e):
		return e
	case errors.Is(err, ErrUnauthorized):
		return NewError(false, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrForbidden):
		return NewError(false, http.StatusForbidden, err.Error())
	case errors.Is(err, session.ErrNotFound):
		return NewError(false, http.StatusNotFound, "session not found")
	case errors.Is(err, session.ErrGameOver):
		return NewError(false, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrInvalidConfig), errors.Is(err, bot.ErrUnknownDifficulty):
		return NewError(false, http.StatusBadRequest, err.Error())
	default:
		return NewError(false, http.StatusInternalServerError, "internal error")
	}
}
