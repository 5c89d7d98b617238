package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/store"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
		field  string
	}{
		{"already registered", fmt.Errorf("register: %w", apperrors.ErrAlreadyRegistered), http.StatusConflict, dto.ErrorCodeAlreadyRegistered, ""},
		{"closed", apperrors.ErrEventClosed, http.StatusConflict, dto.ErrorCodeEventClosed, ""},
		{"full", apperrors.ErrEventFull, http.StatusConflict, dto.ErrorCodeEventFull, ""},
		{"empty comment", apperrors.ErrEmptyComment, http.StatusBadRequest, dto.ErrorCodeEmptyComment, "content"},
		{"validation with field", apperrors.NewValidationError("year", "bad year"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "year"},
		{"not found", apperrors.NewResourceNotFoundError("event not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound, ""},
		{"store conflict", &store.ConflictError{Err: errors.New("duplicate key")}, http.StatusConflict, dto.ErrorCodeConflict, ""},
		{"malformed value", fmt.Errorf("select: %w", store.ErrInvalidValue), http.StatusBadRequest, dto.ErrorCodeValidationFailed, ""},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, ""},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := classify(tt.err)
			if status != tt.status || detail.Code != tt.code || detail.Field != tt.field {
				t.Errorf("classify = %d %s %q, want %d %s %q", status, detail.Code, detail.Field, tt.status, tt.code, tt.field)
			}
		})
	}
}

func TestClassifyKeepsCustomMessage(t *testing.T) {
	_, detail := classify(apperrors.NewResourceNotFoundError("news item not found"))
	if detail.Message != "news item not found" {
		t.Errorf("message = %q", detail.Message)
	}
}
