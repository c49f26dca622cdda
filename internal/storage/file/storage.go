package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/mcoot/candyledger/internal/storage"
)

const (
	currentFile      = "CURRENT"
	generationPrefix = "snap-"
	tempMarker       = ".tmp-"
	jsonExt          = ".json"
	zstdExt          = ".json.zst"
)

// Config holds file storage settings
type Config struct {
	// Dir is the data directory
	Dir string
	// Compress writes families zstd compressed
	Compress bool
}

// Storage writes each snapshot into a content-addressed generation directory
// and publishes it by atomically replacing the CURRENT pointer file.
// A crash leaves CURRENT naming either the previous or the new generation.
type Storage struct {
	cfg    Config
	logger *slog.Logger
	enc    *zstd.Encoder
	dec    *zstd.Decoder

	mu sync.Mutex
}

// New creates the data directory if needed and returns a file storage
func New(cfg Config, logger *slog.Logger) (*Storage, error) {
	if cfg.Dir == "" {
		return nil, errors.New("file storage requires a directory")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		return nil, err
	}
	return &Storage{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "file_storage")),
		enc:    enc,
		dec:    dec,
	}, nil
}

// Ensure Storage implements the interface
var _ storage.Backend = (*Storage)(nil)

func (s *Storage) Save(ctx context.Context, snap *storage.Snapshot) error {
	encoded, err := storage.Encode(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payloads := make(map[storage.Family][]byte, len(encoded))
	h := xxhash.New()
	for _, f := range storage.Families {
		data := encoded[f]
		if s.cfg.Compress {
			data = s.enc.EncodeAll(data, nil)
		}
		payloads[f] = data
		_, _ = h.WriteString(s.fileName(f))
		_, _ = h.Write(data)
	}
	gen := fmt.Sprintf("%s%016x", generationPrefix, h.Sum64())

	if err := ctx.Err(); err != nil {
		return err
	}

	previous, _ := s.readCurrent()
	if !s.complete(gen) {
		if err := s.writeGeneration(gen, payloads); err != nil {
			return err
		}
	}
	if err := s.writeCurrent(gen); err != nil {
		return err
	}
	s.prune(gen, previous)
	return nil
}

func (s *Storage) Load(ctx context.Context) (*storage.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := make(map[storage.Family][]byte)
	gen, err := s.readCurrent()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Info("no saved state, starting empty", slog.String("dir", s.cfg.Dir))
		return storage.Decode(raw, s.logger), nil
	case err != nil:
		s.logger.Warn("unreadable CURRENT pointer, starting empty", slog.String("error", err.Error()))
		return storage.Decode(raw, s.logger), nil
	}

	for _, f := range storage.Families {
		data, err := s.readFamily(gen, f)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("family unreadable",
					slog.String("family", string(f)),
					slog.String("generation", gen),
					slog.String("error", err.Error()))
			}
			continue
		}
		raw[f] = data
	}
	return storage.Decode(raw, s.logger), nil
}

func (s *Storage) Close() error {
	s.dec.Close()
	return s.enc.Close()
}

// CurrentGeneration returns the generation named by CURRENT
func (s *Storage) CurrentGeneration() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readCurrent()
}

func (s *Storage) fileName(f storage.Family) string {
	if s.cfg.Compress {
		return string(f) + zstdExt
	}
	return string(f) + jsonExt
}

func (s *Storage) complete(gen string) bool {
	for _, f := range storage.Families {
		if _, err := os.Stat(filepath.Join(s.cfg.Dir, gen, s.fileName(f))); err != nil {
			return false
		}
	}
	return true
}

func (s *Storage) writeGeneration(gen string, payloads map[storage.Family][]byte) error {
	tmp, err := os.MkdirTemp(s.cfg.Dir, gen+tempMarker)
	if err != nil {
		return fmt.Errorf("create generation: %w", err)
	}
	for _, f := range storage.Families {
		if err := writeFileSync(filepath.Join(tmp, s.fileName(f)), payloads[f]); err != nil {
			_ = os.RemoveAll(tmp)
			return fmt.Errorf("write %s: %w", f, err)
		}
	}
	if err := syncDir(tmp); err != nil {
		_ = os.RemoveAll(tmp)
		return err
	}

	final := filepath.Join(s.cfg.Dir, gen)
	// An incomplete directory under the final name is a leftover of an interrupted save
	if err := os.RemoveAll(final); err != nil {
		_ = os.RemoveAll(tmp)
		return err
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.RemoveAll(tmp)
		return fmt.Errorf("publish generation: %w", err)
	}
	return syncDir(s.cfg.Dir)
}

func (s *Storage) writeCurrent(gen string) error {
	path := filepath.Join(s.cfg.Dir, currentFile)
	tmp := path + tempMarker + "0"
	if err := writeFileSync(tmp, []byte(gen+"\n")); err != nil {
		return fmt.Errorf("write CURRENT: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("publish CURRENT: %w", err)
	}
	return syncDir(s.cfg.Dir)
}

func (s *Storage) readCurrent() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.cfg.Dir, currentFile))
	if err != nil {
		return "", err
	}
	gen := strings.TrimSpace(string(data))
	if !strings.HasPrefix(gen, generationPrefix) || strings.ContainsAny(gen, `/\`) {
		return "", fmt.Errorf("invalid generation %q", gen)
	}
	return gen, nil
}

func (s *Storage) readFamily(gen string, f storage.Family) ([]byte, error) {
	dir := filepath.Join(s.cfg.Dir, gen)
	data, err := os.ReadFile(filepath.Join(dir, string(f)+zstdExt))
	if err == nil {
		return s.dec.DecodeAll(data, nil)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return os.ReadFile(filepath.Join(dir, string(f)+jsonExt))
}

// prune removes generations other than the current and previous ones,
// plus temporary directories left by interrupted saves.
func (s *Storage) prune(current, previous string) {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, generationPrefix) || name == current || name == previous {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.cfg.Dir, name)); err != nil {
			s.logger.Warn("failed to prune generation",
				slog.String("generation", name),
				slog.String("error", err.Error()))
		}
	}
}

func writeFileSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	if err := d.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return err
	}
	return nil
}
