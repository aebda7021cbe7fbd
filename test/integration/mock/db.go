package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var dbSingleton *Db

// Db wraps the shared in-memory SQLite database backing the integration
// suite. The schema is migrated once when the database is opened; ClearDB
// wipes all rows between scenarios.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared test database and migrates the given models.
// The map is keyed by table name so assertion steps can resolve the
// destination type for raw row lookups.
func NewDb(models map[string]any) *Db {
	dbOnce.Do(func() {
		dbSingleton = openDb(models)
	})
	return dbSingleton
}

func openDb(models map[string]any) *Db {
	conn, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// A single connection keeps every scenario on the same in-memory store.
	conn.SetMaxOpenConns(1)

	gormDB, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to open test database: " + err.Error())
	}

	d := &Db{DbConn: gormDB, models: models}
	if err := d.migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %s", err))
	}

	return d
}

func (d *Db) migrate() error {
	modelList := make([]any, 0, len(d.models))
	for _, m := range d.models {
		modelList = append(modelList, m)
	}

	if err := d.DbConn.AutoMigrate(modelList...); err != nil {
		return err
	}

	for _, m := range modelList {
		if !d.DbConn.Migrator().HasTable(m) {
			return fmt.Errorf("table for model %T was not created", m)
		}
	}

	return nil
}

// ClearDB removes every row from every migrated table, including rows
// hidden behind soft deletes.
func (d *Db) ClearDB() error {
	for _, m := range d.models {
		err := d.DbConn.
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(m).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// GetModel returns the model registered for a table name.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
