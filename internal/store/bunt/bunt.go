// Package bunt is the flat-file record store: every RSVP is a JSON document in a buntdb file.
package bunt

import (
	"context"
	"fmt"
	"time"

	"github.com/jekabolt/wedding-rsvp/internal/dependency"
	"github.com/tidwall/buntdb"
)

type Config struct {
	Path       string `mapstructure:"path"`
	SyncPolicy string `mapstructure:"sync_policy"`
}

var syncPolicies = map[string]buntdb.SyncPolicy{
	"":            buntdb.EverySecond,
	"never":       buntdb.Never,
	"everysecond": buntdb.EverySecond,
	"always":      buntdb.Always,
}

// BuntDB implements dependency.Repository on top of a single buntdb file.
type BuntDB struct {
	db *buntdb.DB
	// tx is set while running inside Tx; reads and writes then go through it.
	tx *buntdb.Tx
	ts time.Time
}

// New opens (or creates) the database file. Path ":memory:" keeps everything in memory.
func New(c Config) (*BuntDB, error) {
	if c.Path == "" {
		return nil, fmt.Errorf("bunt path is required")
	}
	policy, ok := syncPolicies[c.SyncPolicy]
	if !ok {
		return nil, fmt.Errorf("unknown bunt sync policy %q", c.SyncPolicy)
	}

	db, err := buntdb.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open bunt db: %w", err)
	}

	var cfg buntdb.Config
	if err := db.ReadConfig(&cfg); err != nil {
		db.Close()
		return nil, fmt.Errorf("can't read bunt config: %w", err)
	}
	cfg.SyncPolicy = policy
	if err := db.SetConfig(cfg); err != nil {
		db.Close()
		return nil, fmt.Errorf("can't set bunt config: %w", err)
	}

	return &BuntDB{db: db}, nil
}

// Tx runs f inside one read-write buntdb transaction. buntdb serialises writers,
// so the read-then-write decisions made in f are atomic per database.
func (b *BuntDB) Tx(ctx context.Context, f func(context.Context, dependency.Repository) error) error {
	if b.InTx() {
		return f(ctx, b)
	}
	return b.db.Update(func(tx *buntdb.Tx) error {
		return f(ctx, &BuntDB{
			db: b.db,
			tx: tx,
			ts: b.Now(),
		})
	})
}

func (b *BuntDB) InTx() bool {
	return b.tx != nil
}

// Now returns current time for the store. It is frozen during transactions.
func (b *BuntDB) Now() time.Time {
	if b.ts.IsZero() {
		return time.Now().UTC()
	}
	return b.ts
}

func (b *BuntDB) Ping(ctx context.Context) error {
	return b.db.View(func(tx *buntdb.Tx) error {
		_, err := tx.Len()
		return err
	})
}

func (b *BuntDB) Close() {
	_ = b.db.Close()
}

func (b *BuntDB) view(fn func(tx *buntdb.Tx) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	return b.db.View(fn)
}

func (b *BuntDB) update(fn func(tx *buntdb.Tx) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	return b.db.Update(fn)
}
