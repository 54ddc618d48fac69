package cache

import "testing"

func TestKey_Deterministic(t *testing.T) {
	a := Key("src/main.frr", "div\n    p \"hi\"\n")
	b := Key("src/main.frr", "div\n    p \"hi\"\n")
	if a != b {
		t.Errorf("same inputs produced different keys: %s vs %s", a, b)
	}

	c := Key("src/main.frr", "div\n    p \"bye\"\n")
	if a == c {
		t.Error("different inputs produced the same key")
	}
	if len(a) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(a))
	}
}

func TestCache_GetPut(t *testing.T) {
	c := New()

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache should miss")
	}

	c.Put("k1", []byte("<html>"))
	data, ok := c.Get("k1")
	if !ok {
		t.Fatal("Get after Put should hit")
	}
	if string(data) != "<html>" {
		t.Errorf("cached data = %q, want <html>", data)
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.EntryCount != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 entry", stats)
	}
}

func TestCache_InvalidateByDependency(t *testing.T) {
	c := New()
	c.PutWithDeps("render:main", []byte("a"), []string{"src/main.frr"})
	c.PutWithDeps("render:button", []byte("b"), []string{"src/components/Button.frr"})
	c.PutWithDeps("render:app", []byte("c"), []string{"src/main.frr", "src/components/Button.frr"})

	n := c.InvalidateByDependency("src/components")
	if n != 2 {
		t.Errorf("invalidated %d entries, want 2", n)
	}

	if _, ok := c.Get("render:main"); !ok {
		t.Error("entry without the dependency should survive")
	}
	if _, ok := c.Get("render:button"); ok {
		t.Error("dependent entry should be evicted")
	}
	if _, ok := c.Get("render:app"); ok {
		t.Error("entry with any matching dependency should be evicted")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New()
	c.Put("k1", []byte("a"))
	c.Put("k2", []byte("b"))
	c.Clear()

	if stats := c.GetStats(); stats.EntryCount != 0 {
		t.Errorf("entries after Clear = %d, want 0", stats.EntryCount)
	}
	if _, ok := c.Get("k1"); ok {
		t.Error("Get after Clear should miss")
	}
}
