package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/bettervitals/backend/internal/domain"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value interface{}
		want  interface{}
	}{
		{
			name:  "string",
			key:   "narrative:a",
			value: "summary text",
			want:  "summary text",
		},
		{
			name:  "numbers come back as float64",
			key:   "narrative:b",
			value: 42,
			want:  float64(42),
		},
		{
			name: "struct comes back as JSON map",
			key:  "narrative:c",
			value: domain.ActionStep{
				Title: "Lower the thermostat", Description: "Aim for 65F", Icon: "thermostat",
			},
			want: map[string]interface{}{
				"title": "Lower the thermostat", "description": "Aim for 65F", "icon": "thermostat",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cache.Set(ctx, tt.key, tt.value, time.Minute); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			got, err := cache.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if m, ok := tt.want.(map[string]interface{}); ok {
				gm, ok := got.(map[string]interface{})
				if !ok {
					t.Fatalf("Get() = %T, want map", got)
				}
				for k, v := range m {
					if gm[k] != v {
						t.Errorf("Get()[%s] = %v, want %v", k, gm[k], v)
					}
				}
				return
			}
			if got != tt.want {
				t.Errorf("Get() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Set(ctx, "short", "value", time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after expiry error = %v, want ErrCacheMiss", err)
	}
	if ok, _ := cache.Exists(ctx, "short"); ok {
		t.Errorf("Exists() = true after expiry")
	}
}

func TestMemoryCache_GetMiss(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()

	_, err := cache.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_DeleteAndExists(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()
	ctx := context.Background()

	if ok, err := cache.Exists(ctx, "k"); err != nil || ok {
		t.Fatalf("Exists() = %v, %v before set", ok, err)
	}
	if err := cache.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if ok, _ := cache.Exists(ctx, "k"); !ok {
		t.Errorf("Exists() = false after set")
	}
	if err := cache.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after delete error = %v", err)
	}
}

func TestMemoryCache_SetRejectsUnencodable(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()

	if err := cache.Set(context.Background(), "bad", make(chan int), time.Minute); err == nil {
		t.Error("Set() error = nil, want encoding error")
	}
}

func TestMemoryCache_JanitorSweeps(t *testing.T) {
	defer goleak.VerifyNone(t)
	cache := NewMemoryCache(5 * time.Millisecond)
	defer cache.Close()
	ctx := context.Background()

	_ = cache.Set(ctx, "gone", "v", time.Millisecond)
	_ = cache.Set(ctx, "kept", "v", time.Hour)

	deadline := time.Now().Add(time.Second)
	for cache.Len() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if n := cache.Len(); n != 1 {
		t.Errorf("Len() = %d after sweep, want 1", n)
	}
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)
	cache := NewMemoryCache(time.Millisecond)
	if err := cache.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache(time.Millisecond)
	defer cache.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := string(rune('a' + id))
			if err := cache.Set(ctx, key, id, time.Minute); err != nil {
				t.Errorf("concurrent Set() error = %v", err)
			}
			if _, err := cache.Get(ctx, key); err != nil {
				t.Errorf("concurrent Get() error = %v", err)
			}
		}(i)
	}
	wg.Wait()
}
