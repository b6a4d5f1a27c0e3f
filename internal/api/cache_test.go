package api

import (
	"testing"
	"time"

	"github.com/plateseries/matriculas/internal/series"
)

func TestCache(t *testing.T) {
	records := []series.Record{
		{Month: "Enero", Year: 2024, End: "MFX"},
		{Month: "Febrero", Year: 2024, End: "MGK"},
	}

	t.Run("new cache is empty", func(t *testing.T) {
		cache := NewCache(time.Hour)

		if got, ok := cache.Get(); ok {
			t.Errorf("Get on empty cache = %v, true, want miss", got)
		}
		if cache.Size() != 0 {
			t.Errorf("Size on empty cache = %d, want 0", cache.Size())
		}
		if _, ok := cache.Age(); ok {
			t.Error("Age on empty cache reported a value, want miss")
		}
	})

	t.Run("set and get", func(t *testing.T) {
		cache := NewCache(time.Hour)
		cache.Set(records)

		got, ok := cache.Get()
		if !ok {
			t.Fatal("Get after Set missed, want hit")
		}
		if len(got) != 2 {
			t.Fatalf("Get returned %d records, want 2", len(got))
		}
		if got[0].End != "MFX" || got[1].End != "MGK" {
			t.Errorf("Get returned %v, want cached records in order", got)
		}
		if cache.Size() != 2 {
			t.Errorf("Size = %d, want 2", cache.Size())
		}
	})

	t.Run("get returns a copy", func(t *testing.T) {
		cache := NewCache(time.Hour)
		cache.Set(records)

		got, _ := cache.Get()
		got[0].End = "ZZZ"

		again, _ := cache.Get()
		if again[0].End != "MFX" {
			t.Errorf("mutating a Get result changed the cache: End = %q, want MFX", again[0].End)
		}
	})

	t.Run("set copies its input", func(t *testing.T) {
		cache := NewCache(time.Hour)
		input := []series.Record{{Month: "Enero", Year: 2024, End: "MFX"}}
		cache.Set(input)

		input[0].End = "ZZZ"

		got, _ := cache.Get()
		if got[0].End != "MFX" {
			t.Errorf("mutating Set input changed the cache: End = %q, want MFX", got[0].End)
		}
	})

	t.Run("expired entries miss", func(t *testing.T) {
		cache := NewCache(1 * time.Millisecond)
		cache.Set(records)

		if _, ok := cache.Get(); !ok {
			t.Fatal("Get immediately after Set missed")
		}

		time.Sleep(10 * time.Millisecond)

		if got, ok := cache.Get(); ok {
			t.Errorf("Get after expiry = %v, true, want miss", got)
		}
	})

	t.Run("age grows until reset by set", func(t *testing.T) {
		cache := NewCache(time.Hour)
		cache.Set(records)

		time.Sleep(5 * time.Millisecond)

		age, ok := cache.Age()
		if !ok {
			t.Fatal("Age after Set missed")
		}
		if age <= 0 {
			t.Errorf("Age = %v, want positive", age)
		}

		cache.Set(records)
		reset, _ := cache.Age()
		if reset > age {
			t.Errorf("Age after second Set = %v, want below %v", reset, age)
		}
	})
}

func TestNewCache_DefaultTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want time.Duration
	}{
		{name: "explicit TTL kept", ttl: time.Minute, want: time.Minute},
		{name: "zero falls back to default", ttl: 0, want: DefaultTTL},
		{name: "negative falls back to default", ttl: -time.Hour, want: DefaultTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewCache(tt.ttl)
			if cache.ttl != tt.want {
				t.Errorf("NewCache(%v).ttl = %v, want %v", tt.ttl, cache.ttl, tt.want)
			}
		})
	}
}
