package driver

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"surgefmt/internal/format"
)

func TestResultCacheRoundTrip(t *testing.T) {
	cache, err := OpenResultCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenResultCacheAt: %v", err)
	}

	key := cacheKey([]byte("fn main() {}\n"), format.Defaults())
	payload := &ResultPayload{
		Schema:    resultCacheSchemaVersion,
		Formatted: []byte("fn main() {}\n"),
		Changed:   false,
	}
	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got ResultPayload
	hit, err := cache.Get(key, &got)
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v; want hit", hit, err)
	}
	if !bytes.Equal(got.Formatted, payload.Formatted) || got.Changed != payload.Changed {
		t.Fatalf("payload = %+v, want %+v", got, payload)
	}
}

func TestResultCacheMiss(t *testing.T) {
	cache, err := OpenResultCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenResultCacheAt: %v", err)
	}
	var got ResultPayload
	hit, err := cache.Get(cacheKey([]byte("never stored"), format.Defaults()), &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatalf("unexpected cache hit")
	}
}

func TestResultCacheStaleSchemaIsMiss(t *testing.T) {
	cache, err := OpenResultCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenResultCacheAt: %v", err)
	}
	key := cacheKey([]byte("x"), format.Defaults())
	if err := cache.Put(key, &ResultPayload{Schema: resultCacheSchemaVersion + 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var got ResultPayload
	hit, err := cache.Get(key, &got)
	if err != nil || hit {
		t.Fatalf("stale schema Get = %v, %v; want miss", hit, err)
	}
}

func TestCacheKeyDependsOnOptions(t *testing.T) {
	content := []byte("fn main() {}\n")
	base := cacheKey(content, format.Defaults())

	wide := format.Defaults()
	wide.MaxWidth = 120
	if cacheKey(content, wide) == base {
		t.Fatalf("MaxWidth change must change the key")
	}

	noRemove := format.Defaults()
	noRemove.RemoveUnusedImports = false
	if cacheKey(content, noRemove) == base {
		t.Fatalf("RemoveUnusedImports change must change the key")
	}

	if cacheKey([]byte("other"), format.Defaults()) == base {
		t.Fatalf("content change must change the key")
	}
}

func TestResultCachePutLeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	cache, err := OpenResultCacheAt(dir)
	if err != nil {
		t.Fatalf("OpenResultCacheAt: %v", err)
	}
	key := cacheKey([]byte("fn main() {}\n"), format.Defaults())
	if err := cache.Put(key, &ResultPayload{Schema: resultCacheSchemaVersion}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Временный файл либо переименован, либо удалён.
	leftovers, err := filepath.Glob(filepath.Join(dir, "fmt", "tmp-*"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestResultCacheDropAll(t *testing.T) {
	cache, err := OpenResultCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenResultCacheAt: %v", err)
	}
	key := cacheKey([]byte("x"), format.Defaults())
	if err := cache.Put(key, &ResultPayload{Schema: resultCacheSchemaVersion}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	var got ResultPayload
	hit, err := cache.Get(key, &got)
	if err != nil || hit {
		t.Fatalf("Get after DropAll = %v, %v; want miss", hit, err)
	}
}

func TestFormatPathsUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.sg")
	writeFile(t, path, "fn  main( ){ run(); }")

	cache, err := OpenResultCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenResultCacheAt: %v", err)
	}
	opts := FormatOptions{Check: true, Options: format.Defaults(), Cache: cache}

	first, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	second, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("FormatPaths (cached): %v", err)
	}
	if first[0].Changed != second[0].Changed {
		t.Fatalf("cached run disagrees: %v vs %v", first[0].Changed, second[0].Changed)
	}
}
