package mock

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ecooy/backend/internal/integration/persistence/model"
)

var once sync.Once
var db *Db

// Db is a shared in-memory sqlite database migrated with every persistence model.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// Models maps table names to their gorm models.
func Models() map[string]any {
	return map[string]any{
		"users":                 &model.UserModel{},
		"profiles":              &model.ProfileModel{},
		"transactions":          &model.TransactionModel{},
		"goals":                 &model.GoalModel{},
		"notifications":         &model.NotificationModel{},
		"refresh_tokens":        &model.RefreshTokenModel{},
		"password_reset_tokens": &model.PasswordResetTokenModel{},
		"email_queue":           &model.EmailQueueModel{},
	}
}

// NewDb returns the process-wide database, creating it on first use.
func NewDb() *Db {
	once.Do(func() {
		db = open(Models())
	})
	return db
}

func open(models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	d := &Db{DbConn: dbConn, models: models}
	if err := dbConn.AutoMigrate(d.modelList()...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}
	return d
}

// modelList returns the models in a stable order.
func (d *Db) modelList() []any {
	tables := make([]string, 0, len(d.models))
	for table := range d.models {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	list := make([]any, 0, len(tables))
	for _, table := range tables {
		list = append(list, d.models[table])
	}
	return list
}

// ClearDB removes every row from every table.
func (d *Db) ClearDB() error {
	for _, m := range d.modelList() {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
		if err != nil {
			return fmt.Errorf("clear %T: %w", m, err)
		}
	}
	return nil
}

// GetModel returns the model registered for the table.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}

// Count returns the rows in table matching the column filters.
func (d *Db) Count(table string, where map[string]any) (int64, error) {
	m, ok := d.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	var count int64
	query := d.DbConn.Model(m)
	if len(where) > 0 {
		query = query.Where(where)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
