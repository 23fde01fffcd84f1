// Package store persists named sections in an embedded badger database.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/alexiusacademia/gocfs/internal/section"
)

// DefaultName is used when a record is created without a name.
const DefaultName = "New Section"

const keyPrefix = "section/"

var (
	// ErrNotFound is returned when no record matches an ID or name.
	ErrNotFound = errors.New("section record not found")

	// ErrAmbiguous is returned when a name matches more than one record.
	ErrAmbiguous = errors.New("section name is ambiguous")
)

// Record is a stored section with its name and timestamps.
type Record struct {
	ID       uuid.UUID   `msgpack:"id"`
	Name     string      `msgpack:"name"`
	Created  time.Time   `msgpack:"created"`
	Modified time.Time   `msgpack:"modified"`
	Section  section.Any `msgpack:"section"`
}

// CFS returns the cold-formed steel section held by the record.
func (r *Record) CFS() (*section.Section, error) {
	if r.Section.Kind != section.KindCFS || r.Section.CFS == nil {
		return nil, fmt.Errorf("record %s holds a %q section", r.ID, r.Section.Kind)
	}
	return r.Section.CFS, nil
}

// Config selects the database location.
type Config struct {
	Path     string
	InMemory bool
	Logger   *slog.Logger
}

// InMemoryConfig returns a configuration for a throwaway store.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Store is safe for concurrent use.
type Store struct {
	db  *badger.DB
	log *slog.Logger
	now func() time.Time
}

type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Open opens or creates the database.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for a persistent store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(true)
	}
	opts = opts.WithNumVersionsToKeep(1)

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
		opts = opts.WithLogger(nil)
	} else {
		opts = opts.WithLogger(&badgerLogger{logger: log})
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open section store: %w", err)
	}
	return &Store{db: db, log: log, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(id uuid.UUID) []byte {
	return []byte(keyPrefix + id.String())
}

func get(txn *badger.Txn, id uuid.UUID) (*Record, error) {
	item, err := txn.Get(key(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	err = item.Value(func(val []byte) error {
		return msgpack.Unmarshal(val, &rec)
	})
	if err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	return &rec, nil
}

func put(txn *badger.Txn, rec *Record) error {
	val, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", rec.ID, err)
	}
	return txn.Set(key(rec.ID), val)
}

// Create stores a new record holding a copy of sec.
func (s *Store) Create(ctx context.Context, name string, sec *section.Section) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}
	now := s.now().UTC()
	rec := &Record{
		ID:       uuid.New(),
		Name:     name,
		Created:  now,
		Modified: now,
		Section:  section.NewCFS(sec.Clone()),
	}
	if err := s.db.Update(func(txn *badger.Txn) error { return put(txn, rec) }); err != nil {
		return nil, fmt.Errorf("creating record: %w", err)
	}
	s.log.Info("section record created", "id", rec.ID, "name", rec.Name)
	return rec, nil
}

// Duplicate stores a copy of a record under the same name with fresh
// timestamps.
func (s *Store) Duplicate(ctx context.Context, id uuid.UUID) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rec *Record
	err := s.db.Update(func(txn *badger.Txn) error {
		src, err := get(txn, id)
		if err != nil {
			return err
		}
		now := s.now().UTC()
		rec = &Record{
			ID:       uuid.New(),
			Name:     src.Name,
			Created:  now,
			Modified: now,
			Section:  src.Section,
		}
		return put(txn, rec)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("section record duplicated", "id", rec.ID, "source", id, "name", rec.Name)
	return rec, nil
}

// Get retrieves a record by ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rec *Record
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = get(txn, id)
		return err
	})
	return rec, err
}

// update applies fn to the stored record and bumps its modification time.
func (s *Store) update(ctx context.Context, id uuid.UUID, fn func(*Record)) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rec *Record
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		if rec, err = get(txn, id); err != nil {
			return err
		}
		fn(rec)
		rec.Modified = s.now().UTC()
		return put(txn, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Save replaces the section of an existing record.
func (s *Store) Save(ctx context.Context, id uuid.UUID, sec *section.Section) (*Record, error) {
	rec, err := s.update(ctx, id, func(r *Record) { r.Section = section.NewCFS(sec.Clone()) })
	if err != nil {
		return nil, err
	}
	s.log.Debug("section record saved", "id", id)
	return rec, nil
}

// Rename changes the name of an existing record.
func (s *Store) Rename(ctx context.Context, id uuid.UUID, name string) (*Record, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name must not be empty")
	}
	rec, err := s.update(ctx, id, func(r *Record) { r.Name = name })
	if err != nil {
		return nil, err
	}
	s.log.Info("section record renamed", "id", id, "name", name)
	return rec, nil
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, id)
			}
			return err
		}
		return txn.Delete(key(id))
	})
	if err != nil {
		return err
	}
	s.log.Info("section record deleted", "id", id)
	return nil
}

// List returns records, most recently modified first. A limit of zero or
// less returns every record.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var recs []*Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("decode record %s: %w", it.Item().Key(), err)
			}
			recs = append(recs, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Modified.After(recs[j].Modified)
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// Find resolves a reference that is either a record ID or an exact name.
func (s *Store) Find(ctx context.Context, ref string) (*Record, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return s.Get(ctx, id)
	}
	recs, err := s.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	var found *Record
	for _, r := range recs {
		if r.Name != ref {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
		}
		found = r
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return found, nil
}
