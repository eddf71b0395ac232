package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"gutterbook/services/booking"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{booking.NewValidationError("bad input"), http.StatusBadRequest},
		{booking.NewConflictError("slot taken"), http.StatusConflict},
		{booking.NewNotFoundError("no booking"), http.StatusNotFound},
		{booking.NewGatewayError("stripe down"), http.StatusBadGateway},
		{booking.NewInternalError("db down"), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, statusFor(tc.err))
	}
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "slot taken", messageOf(booking.NewConflictError("slot taken")))
	assert.Equal(t, "plain failure", messageOf(errors.New("plain failure")))
}
