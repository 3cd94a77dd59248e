package cache

import (
	"testing"
	"time"
)

func TestEntry_IsExpired(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ttl := 5 * time.Minute

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{
			name: "just inserted",
			now:  base,
			want: false,
		},
		{
			name: "one second before ttl",
			now:  base.Add(ttl - time.Second),
			want: false,
		},
		{
			name: "exactly at ttl",
			now:  base.Add(ttl),
			want: true,
		},
		{
			name: "long expired",
			now:  base.Add(time.Hour),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := Entry{Likes: 1, CachedAt: base}
			if got := entry.IsExpired(tt.now, ttl); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntry_TTL(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ttl := 5 * time.Minute

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{
			name: "full ttl remaining",
			now:  base,
			want: ttl,
		},
		{
			name: "one minute elapsed",
			now:  base.Add(time.Minute),
			want: 4 * time.Minute,
		},
		{
			name: "already expired",
			now:  base.Add(time.Hour),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := Entry{CachedAt: base}
			if got := entry.TTL(tt.now, ttl); got != tt.want {
				t.Errorf("TTL() = %v, want %v", got, tt.want)
			}
		})
	}
}
