package resource

import (
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok, err := cache.Get("key"); err != nil || ok {
		t.Fatalf("Get before Set: ok=%v err=%v", ok, err)
	}

	if err := cache.Set("key", []byte("value")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, ok, err := cache.Get("key")
	if err != nil || !ok {
		t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
	}
	if string(data) != "value" {
		t.Errorf("data = %q, want %q", data, "value")
	}

	if err := cache.Delete("key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := cache.Get("key"); ok {
		t.Error("Get after Delete: hit, want miss")
	}
}

func TestCacheExpiry(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Nanosecond)
	if err != nil {
		t.Fatal(err)
	}

	if err := cache.Set("key", []byte("value")); err != nil {
		t.Fatal(err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, ok, err := cache.Get("key"); err != nil || ok {
		t.Errorf("Get expired entry: ok=%v err=%v, want miss", ok, err)
	}
}

func TestCacheDeleteMissing(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Delete("never-set"); err != nil {
		t.Errorf("Delete missing entry: %v", err)
	}
}
