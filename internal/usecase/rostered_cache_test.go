package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
	rostermock "github.com/riskibarqy/fantasy-coach/internal/mocks/domain/roster"
	"github.com/stretchr/testify/mock"
)

func TestMemoryRosteredCache_LoadsOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	loader := func(context.Context) (map[string]struct{}, error) {
		calls.Add(1)
		return map[string]struct{}{"josh allen": {}}, nil
	}

	c := NewMemoryRosteredCache(nil)
	for range 3 {
		got, err := c.Get(t.Context(), loader)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if _, ok := got["josh allen"]; !ok {
			t.Fatalf("expected cached name, got %v", got)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one load, got %d", calls.Load())
	}

	if err := c.Invalidate(t.Context()); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := c.Get(t.Context(), loader); err != nil {
		t.Fatalf("get after invalidate: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected reload after invalidate, got %d loads", calls.Load())
	}
}

func TestMemoryRosteredCache_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	loader := func(context.Context) (map[string]struct{}, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("scan failed")
		}
		return map[string]struct{}{}, nil
	}

	c := NewMemoryRosteredCache(nil)
	if _, err := c.Get(t.Context(), loader); err == nil {
		t.Fatalf("expected first load to fail")
	}
	if _, err := c.Get(t.Context(), loader); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if _, err := c.Get(t.Context(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil loader, got %v", err)
	}
}

func TestRosteredNamesFromTeams(t *testing.T) {
	t.Parallel()

	teams := rostermock.NewRepository(t)
	teams.On("ListTeams", mock.Anything).Return([]roster.Team{
		{ID: "1", Players: []player.RosterPlayer{{Name: " Josh Allen "}, {Name: ""}}},
		{ID: "2", Players: []player.RosterPlayer{{Name: "JA'MARR CHASE"}}},
	}, nil).Once()

	got, err := RosteredNamesFromTeams(teams)(t.Context())
	if err != nil {
		t.Fatalf("load names: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two names, got %v", got)
	}
	for _, name := range []string{"josh allen", "ja'marr chase"} {
		if _, ok := got[name]; !ok {
			t.Fatalf("missing %q in %v", name, got)
		}
	}

	empty, err := RosteredNamesFromTeams(nil)(t.Context())
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty set without a store, got %v %v", empty, err)
	}
}
