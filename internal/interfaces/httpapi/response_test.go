package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_Classification(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantStatus  string
		wantReason  string
		wantMessage string
	}{
		{
			name:        "invalid input",
			err:         fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput),
			wantCode:    http.StatusBadRequest,
			wantStatus:  "INVALID_ARGUMENT",
			wantReason:  "invalidInput",
			wantMessage: "invalid input: bad payload",
		},
		{
			name:        "not found",
			err:         fmt.Errorf("player %q: %w", "Bo Nix", usecase.ErrNotFound),
			wantCode:    http.StatusNotFound,
			wantStatus:  "NOT_FOUND",
			wantReason:  "notFound",
			wantMessage: `player "Bo Nix": resource not found`,
		},
		{
			name:        "provider down",
			err:         fmt.Errorf("%w: projection provider is temporarily unavailable", usecase.ErrDependencyUnavailable),
			wantCode:    http.StatusServiceUnavailable,
			wantStatus:  "UNAVAILABLE",
			wantReason:  "dependencyUnavailable",
			wantMessage: "dependency unavailable: projection provider is temporarily unavailable",
		},
		{
			name:        "unclassified is masked",
			err:         errors.New("pq: password authentication failed"),
			wantCode:    http.StatusInternalServerError,
			wantStatus:  "INTERNAL",
			wantReason:  "internalError",
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := logging.ContextWithRequestID(context.Background(), "req-42")
			rec := httptest.NewRecorder()
			writeError(ctx, rec, tt.err)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			var body envelope
			if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response body: %v", err)
			}
			if body.Error == nil {
				t.Fatalf("expected error object in response")
			}
			got := body.Error
			if got.Status != tt.wantStatus || got.Message != tt.wantMessage || got.RequestID != "req-42" {
				t.Fatalf("unexpected error body %+v", got)
			}
			if len(got.Errors) != 1 || got.Errors[0].Reason != tt.wantReason || got.Errors[0].Domain != errorDomain {
				t.Fatalf("unexpected error items %+v", got.Errors)
			}
		})
	}
}
