package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestGetOrLoad_CachesValue(t *testing.T) {
	c := New()
	calls := 0
	loader := func() (interface{}, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad("k", time.Minute, loader)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != "value" {
			t.Errorf("expected value, got %v", v)
		}
	}
	if calls != 1 {
		t.Errorf("expected loader to run once, ran %d times", calls)
	}
}

func TestGetOrLoad_ErrorNotCached(t *testing.T) {
	c := New()
	calls := 0
	loader := func() (interface{}, error) {
		calls++
		if calls == 1 {
			return nil, fmt.Errorf("transient")
		}
		return 42, nil
	}

	if _, err := c.GetOrLoad("k", time.Minute, loader); err == nil {
		t.Fatal("expected error on first load")
	}
	v, err := c.GetOrLoad("k", time.Minute, loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("expected 42, got %v", v)
	}
	if calls != 2 {
		t.Errorf("expected 2 loader calls, got %d", calls)
	}
}

func TestGet_Expiry(t *testing.T) {
	c := New()
	c.Set("k", "v", -time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestInvalidate_ScopedToKeys(t *testing.T) {
	c := New()
	c.Set(KeyActiveStudies, "studies", time.Minute)
	c.Set(KeyNoteTypes, "types", time.Minute)

	c.Invalidate(KeyActiveStudies)

	if _, ok := c.Get(KeyActiveStudies); ok {
		t.Error("expected invalidated key to miss")
	}
	if _, ok := c.Get(KeyNoteTypes); !ok {
		t.Error("expected untouched key to survive")
	}
}

func TestInvalidateAll(t *testing.T) {
	c := New()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.InvalidateAll()
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be cleared")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be cleared")
	}
}
