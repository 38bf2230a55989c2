package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"surgefmt/internal/format"
)

// Current schema version - increment when ResultPayload format changes.
const resultCacheSchemaVersion uint16 = 1

// Digest identifies one (content, options) pair.
type Digest [sha256.Size]byte

// ResultCache хранит результаты форматирования на диске, ключ — дайджест
// содержимого и опций. Thread-safe for concurrent access.
type ResultCache struct {
	mu  sync.RWMutex
	dir string
}

// ResultPayload is the cached outcome of formatting one file.
type ResultPayload struct {
	// Schema version for safe invalidation when the format changes.
	Schema uint16

	Formatted []byte
	Changed   bool
}

// OpenResultCache initializes a disk cache at the standard location
// ($XDG_CACHE_HOME/<app> or ~/.cache/<app>).
func OpenResultCache(app string) (*ResultCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResultCache{dir: dir}, nil
}

// OpenResultCacheAt places the cache in an explicit directory (tests).
func OpenResultCacheAt(dir string) (*ResultCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResultCache{dir: dir}, nil
}

func (c *ResultCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "fmt" — для удобства читаемости/очистки.
	return filepath.Join(c.dir, "fmt", hexKey+".mp")
}

// Put serializes and atomically writes a payload.
func (c *ResultCache) Put(key Digest, payload *ResultPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// На успешном пути файл уже закрыт и переименован; здесь только
		// зачищаем остатки после ошибки.
		_ = f.Close()
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = errors.Join(err, rmErr)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	err = os.Rename(tmp, p)
	return err
}

// Get reads and deserializes a payload; hit=false when the key is absent or
// the schema is stale.
func (c *ResultCache) Get(key Digest, out *ResultPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != resultCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *ResultCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey digests the file content together with every option that affects
// the output, so a style change never serves stale results.
func cacheKey(content []byte, opt format.Options) Digest {
	h := sha256.New()
	h.Write(content)

	var buf [28]byte
	binary.LittleEndian.PutUint16(buf[0:], resultCacheSchemaVersion)
	flags := uint16(0)
	if opt.RemoveUnusedImports {
		flags |= 1
	}
	binary.LittleEndian.PutUint16(buf[2:], flags)
	binary.LittleEndian.PutUint64(buf[4:], uint64(int64(opt.MaxWidth)))       // #nosec G115
	binary.LittleEndian.PutUint64(buf[12:], uint64(int64(opt.BlockIndent)))  // #nosec G115
	binary.LittleEndian.PutUint64(buf[20:], uint64(int64(opt.ContinuationIndent))) // #nosec G115
	h.Write(buf[:28])

	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}
