package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

const (
	apiVersion  = "2.0"
	errorDomain = "fantasy-coach"

	internalErrorMessage = "internal server error"
)

// envelope follows the Google JSON style guide: exactly one of data or error.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Status    string      `json:"status"`
	RequestID string      `json:"requestId,omitempty"`
	Errors    []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorKind struct {
	target error
	code   int
	reason string
	status string
}

// errorKinds is matched in order; the first sentinel found in the chain wins.
var errorKinds = []errorKind{
	{usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
	{usecase.ErrNotFound, http.StatusNotFound, "notFound", "NOT_FOUND"},
	{usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"},
	{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
}

var internalKind = errorKind{code: http.StatusInternalServerError, reason: "internalError", status: "INTERNAL"}

func classify(err error) errorKind {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k
		}
	}
	return internalKind
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelope{APIVersion: apiVersion, Data: data})
}

// writeError maps err onto its sentinel's status. Unclassified errors are
// reported as INTERNAL with a fixed message so driver and upstream details
// stay in the logs.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	kind := classify(err)
	msg := internalErrorMessage
	if kind.target != nil {
		msg = err.Error()
	} else {
		logging.Default().ErrorContext(ctx, "request failed", "error", err)
	}
	writeErrorBody(ctx, w, kind, msg)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeErrorBody(ctx, w, internalKind, internalErrorMessage)
}

func writeErrorBody(ctx context.Context, w http.ResponseWriter, kind errorKind, msg string) {
	writeJSON(ctx, w, kind.code, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:      kind.code,
			Message:   msg,
			Status:    kind.status,
			RequestID: logging.RequestIDFromContext(ctx),
			Errors:    []errorItem{{Domain: errorDomain, Reason: kind.reason, Message: msg}},
		},
	})
}
