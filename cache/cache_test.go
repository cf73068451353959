package cache

import (
	"context"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
		city   string
		dates  []string
		want   string
	}{
		{"city only", "neighborhoods", "Austin", nil, "weekender:neighborhoods:austin"},
		{"trims and folds", "concerts", "  New York  ", nil, "weekender:concerts:new york"},
		{"with range", "concerts", "Austin", []string{"2025-06-01", "2025-06-03"}, "weekender:concerts:austin:2025-06-01:2025-06-03"},
		{"empty dates skipped", "events_tm", "Austin", []string{"", ""}, "weekender:events_tm:austin"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Key(c.prefix, c.city, c.dates...)
			if got != c.want {
				t.Fatalf("Key(%q, %q, %v) = %q; want %q", c.prefix, c.city, c.dates, got, c.want)
			}
		})
	}
}

func TestKeyInsensitiveToFormatting(t *testing.T) {
	a := Key("dining", "Austin", "2025-06-01")
	b := Key("dining", "  aUsTiN ", "2025-06-01")
	if a != b {
		t.Fatalf("keys differ for equivalent inputs: %q vs %q", a, b)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, ok := s.Get(ctx, "weekender:concerts:austin"); ok {
		t.Fatal("expected miss on empty store")
	}

	s.Set(ctx, "weekender:concerts:austin", `[{"name":"Jazz Night"}]`)

	val, ok := s.Get(ctx, "weekender:concerts:austin")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if val != `[{"name":"Jazz Night"}]` {
		t.Fatalf("Get returned %q", val)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	current := time.Now()
	s.now = func() time.Time { return current }

	s.Set(ctx, "k", "v")

	if _, ok := s.Get(ctx, "k"); !ok {
		t.Fatal("expected hit before expiry")
	}

	// Just before the TTL boundary the entry is still trusted.
	current = current.Add(s.ttl - time.Second)
	if _, ok := s.Get(ctx, "k"); !ok {
		t.Fatal("expected hit just before TTL")
	}

	// At and past the boundary it is treated as absent.
	current = current.Add(2 * time.Second)
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatal("expected miss after TTL")
	}

	// A fresh Set replaces the expired entry.
	s.Set(ctx, "k", "v2")
	val, ok := s.Get(ctx, "k")
	if !ok || val != "v2" {
		t.Fatalf("expected replaced value, got (%q, %v)", val, ok)
	}
}
