package testutil

import (
	"context"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/catalogue-etl/internal/data/db"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a fresh, migrated in-memory sqlite database private to tb.
// A single connection keeps every query on the same in-memory database.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		tb.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrateAll(gdb); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return gdb
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func Ctx(tx *gorm.DB) dbctx.Context {
	return dbctx.Context{Ctx: context.Background(), Tx: tx}
}

// WriteCounter counts create, update and delete statements per table.
type WriteCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

// CountWrites registers callbacks on db that feed the returned counter.
func CountWrites(tb testing.TB, db *gorm.DB) *WriteCounter {
	tb.Helper()
	wc := &WriteCounter{counts: map[string]int{}}
	hook := func(tx *gorm.DB) {
		if tx.Statement == nil || tx.Error != nil {
			return
		}
		wc.mu.Lock()
		wc.counts[tx.Statement.Table]++
		wc.mu.Unlock()
	}
	cb := db.Callback()
	if err := cb.Create().After("gorm:create").Register("testutil:count_create", hook); err != nil {
		tb.Fatalf("register create hook: %v", err)
	}
	if err := cb.Update().After("gorm:update").Register("testutil:count_update", hook); err != nil {
		tb.Fatalf("register update hook: %v", err)
	}
	if err := cb.Delete().After("gorm:delete").Register("testutil:count_delete", hook); err != nil {
		tb.Fatalf("register delete hook: %v", err)
	}
	return wc
}

func (w *WriteCounter) Table(name string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.counts[name]
}

func (w *WriteCounter) Total() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, c := range w.counts {
		n += c
	}
	return n
}

func (w *WriteCounter) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.counts = map[string]int{}
}
