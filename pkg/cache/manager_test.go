package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Sternrassler/game-likes-proxy/internal/testutil"
)

func newTestManager(t *testing.T, cfg Config) (*Manager, *testutil.ManualClock) {
	t.Helper()

	clock := testutil.NewManualClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	manager, err := NewManager(cfg, clock)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return manager, clock
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TTL != 300*time.Second {
		t.Errorf("TTL = %v, want %v", cfg.TTL, 300*time.Second)
	}
	if cfg.Capacity != 128 {
		t.Errorf("Capacity = %d, want 128", cfg.Capacity)
	}
}

func TestNewManager_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:        "valid config",
			config:      DefaultConfig(),
			expectError: false,
		},
		{
			name:        "zero ttl",
			config:      Config{TTL: 0, Capacity: 10},
			expectError: true,
		},
		{
			name:        "negative capacity",
			config:      Config{TTL: time.Minute, Capacity: -1},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewManager(tt.config, nil)

			if tt.expectError {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if manager == nil {
				t.Fatal("NewManager returned nil")
			}
			if _, ok := manager.clock.(SystemClock); !ok {
				t.Error("nil clock should default to SystemClock")
			}
		})
	}
}

func TestManager_PutAndGet(t *testing.T) {
	manager, _ := newTestManager(t, DefaultConfig())

	manager.Put(1818, 4200)

	likes, ok := manager.Get(1818)
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if likes != 4200 {
		t.Errorf("Likes = %d, want 4200", likes)
	}
}

func TestManager_GetMiss(t *testing.T) {
	manager, _ := newTestManager(t, DefaultConfig())

	if _, ok := manager.Get(42); ok {
		t.Error("Expected cache miss for unknown universe")
	}
}

func TestManager_Expiry(t *testing.T) {
	manager, clock := newTestManager(t, Config{TTL: 300 * time.Second, Capacity: 8})

	manager.Put(1818, 4200)

	clock.Advance(299 * time.Second)
	if _, ok := manager.Get(1818); !ok {
		t.Fatal("Entry should still be valid before ttl elapses")
	}

	clock.Advance(time.Second)
	if _, ok := manager.Get(1818); ok {
		t.Error("Entry should be expired once ttl elapses")
	}

	if manager.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after lazy purge", manager.Len())
	}
}

func TestManager_PutResetsInsertionTime(t *testing.T) {
	manager, clock := newTestManager(t, Config{TTL: time.Minute, Capacity: 8})

	manager.Put(7, 1)
	clock.Advance(50 * time.Second)
	manager.Put(7, 2)
	clock.Advance(50 * time.Second)

	likes, ok := manager.Get(7)
	if !ok {
		t.Fatal("Overwritten entry should still be valid")
	}
	if likes != 2 {
		t.Errorf("Likes = %d, want 2", likes)
	}
}

func TestManager_CapacityRespected(t *testing.T) {
	const capacity = 4
	manager, _ := newTestManager(t, Config{TTL: time.Hour, Capacity: capacity})

	for id := int64(1); id <= 10; id++ {
		manager.Put(id, id*100)
		if manager.Len() > capacity {
			t.Fatalf("Len() = %d after %d puts, exceeds capacity %d", manager.Len(), id, capacity)
		}
	}

	if manager.Len() != capacity {
		t.Errorf("Len() = %d, want %d", manager.Len(), capacity)
	}

	// Oldest inserted entries were evicted.
	if _, ok := manager.Get(1); ok {
		t.Error("Universe 1 should have been evicted")
	}
	if likes, ok := manager.Get(10); !ok || likes != 1000 {
		t.Errorf("Get(10) = (%d, %v), want (1000, true)", likes, ok)
	}
}

func TestManager_OverwriteDoesNotEvict(t *testing.T) {
	manager, _ := newTestManager(t, Config{TTL: time.Hour, Capacity: 2})

	manager.Put(1, 10)
	manager.Put(2, 20)
	manager.Put(2, 21)

	if _, ok := manager.Get(1); !ok {
		t.Error("Overwriting an existing key must not evict another entry")
	}
	if likes, _ := manager.Get(2); likes != 21 {
		t.Errorf("Likes = %d, want 21", likes)
	}
}

func TestManager_Purge(t *testing.T) {
	manager, _ := newTestManager(t, DefaultConfig())

	manager.Put(1, 1)
	manager.Put(2, 2)
	manager.Purge()

	if manager.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after Purge", manager.Len())
	}
}

func TestManager_Concurrent(t *testing.T) {
	manager, _ := newTestManager(t, Config{TTL: time.Hour, Capacity: 16})

	var wg sync.WaitGroup
	for g := 0; g < 32; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := int64((g + i) % 24)
				manager.Put(id, id)
				if likes, ok := manager.Get(id); ok && likes != id {
					t.Errorf("Get(%d) = %d, want %d", id, likes, id)
				}
			}
		}(g)
	}
	wg.Wait()

	if manager.Len() > 16 {
		t.Errorf("Len() = %d, exceeds capacity 16", manager.Len())
	}
}
