package repository

import (
	"context"
	"testing"
	"time"

	"salesdesk_backend/internal/intake/domain"
	"salesdesk_backend/internal/shared/profile"
	"salesdesk_backend/platform/apperr"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func sampleSession() *domain.Session {
	s := domain.NewSession(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	s.Customer = profile.Customer{FirstName: "Ada", ContactType: profile.ContactEmail, ContactValue: "ada@example.com"}
	s.Provider = profile.Provider{Name: "Sky", Price: decimal.RequireFromString("45.50"), ContractEnd: &end}
	s.PainPoints = []string{profile.PainCost}
	s.MonthlyPrice = "45.5"
	return s
}

func TestStoresRoundTrip(t *testing.T) {
	redisStore, _ := newRedisStore(t, time.Hour)
	stores := map[string]Store{
		"redis":  redisStore,
		"memory": NewMemoryStore(time.Hour),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			in := sampleSession()
			if err := store.Save(ctx, in); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := store.Get(ctx, in.ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Customer.FirstName != "Ada" || !got.Provider.Price.Equal(in.Provider.Price) {
				t.Fatalf("unexpected session %+v", got)
			}
			if got.Provider.ContractEnd == nil || !got.Provider.ContractEnd.Equal(*in.Provider.ContractEnd) {
				t.Fatalf("contract end lost: %+v", got.Provider.ContractEnd)
			}
			if !got.ScheduledFor.Equal(in.ScheduledFor) || got.MonthlyPrice != "45.5" {
				t.Fatalf("unexpected schedule or price %+v", got)
			}

			if err := store.Delete(ctx, in.ID); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := store.Get(ctx, in.ID); !apperr.Is(err, apperr.KindNotFound) {
				t.Fatalf("expected not found after delete, got %v", err)
			}
			if err := store.Delete(ctx, uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
				t.Fatalf("expected not found deleting unknown, got %v", err)
			}
		})
	}
}

func TestRedisStoreExpires(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	in := sampleSession()
	if err := store.Save(context.Background(), in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL(keyPrefix + in.ID.String()); ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %s", ttl)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(context.Background(), in.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}

func TestMemoryStoreExpires(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute).WithClock(func() time.Time { return now })
	in := sampleSession()
	_ = store.Save(context.Background(), in)

	got, _ := store.Get(context.Background(), in.ID)
	got.PainPoints[0] = "mutated"
	again, _ := store.Get(context.Background(), in.ID)
	if again.PainPoints[0] != profile.PainCost {
		t.Fatalf("store leaked its copy")
	}

	now = now.Add(time.Minute)
	if _, err := store.Get(context.Background(), in.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}

func TestStoresRejectStaleVersions(t *testing.T) {
	redisStore, _ := newRedisStore(t, time.Hour)
	stores := map[string]Store{
		"redis":  redisStore,
		"memory": NewMemoryStore(time.Hour),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			in := sampleSession()
			if err := store.Save(ctx, in); err != nil {
				t.Fatalf("save: %v", err)
			}
			if in.Version != 1 {
				t.Fatalf("expected version 1 after first save, got %d", in.Version)
			}

			first, _ := store.Get(ctx, in.ID)
			second, _ := store.Get(ctx, in.ID)
			first.MonthlyPrice = "30"
			if err := store.Save(ctx, first); err != nil {
				t.Fatalf("first writer: %v", err)
			}
			second.MonthlyPrice = "40"
			if err := store.Save(ctx, second); !apperr.Is(err, apperr.KindConflict) {
				t.Fatalf("expected conflict for stale writer, got %v", err)
			}

			got, _ := store.Get(ctx, in.ID)
			if got.MonthlyPrice != "30" || got.Version != 2 {
				t.Fatalf("expected first writer's copy at version 2, got %q v%d", got.MonthlyPrice, got.Version)
			}

			fresh := sampleSession()
			fresh.ID = in.ID
			if err := store.Save(ctx, fresh); !apperr.Is(err, apperr.KindConflict) {
				t.Fatalf("expected conflict overwriting with version 0, got %v", err)
			}
		})
	}
}

func TestMemoryStoreSweepsOnSave(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute).WithClock(func() time.Time { return now })
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := store.Save(ctx, sampleSession()); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	if store.Len() != 3 {
		t.Fatalf("expected 3 sessions, got %d", store.Len())
	}

	now = now.Add(2 * time.Minute)
	if err := store.Save(ctx, sampleSession()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected abandoned sessions to be swept, got %d", store.Len())
	}
}
