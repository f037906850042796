package database

import (
	"database/sql"
	"embed"
	"fmt"
	"io"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationsTable バージョン管理テーブル名
const migrationsTable = "schema_migrations"

// RunMigrations データベースマイグレーションを実行する
// 現在のバージョンを検出し、未適用のマイグレーションをすべて適用する
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("マイグレーションファイルの読み込みに失敗: %w", err)
	}

	driver, err := newMigrateDriver(db)
	if err != nil {
		return fmt.Errorf("マイグレーションドライバの作成に失敗: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("マイグレーションの初期化に失敗: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("マイグレーションの実行に失敗: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		logger.Warn("マイグレーションが dirty 状態", zap.Uint("version", version))
	} else {
		logger.Info("マイグレーション完了", zap.Uint("version", version))
	}

	return nil
}

// migrateDriver 既存の *sql.DB 上で動く golang-migrate の database.Driver 実装
// 同梱の sqlite ドライバは modernc.org/sqlite を "sqlite" 名で登録するため、
// glebarez/sqlite と同居させると起動時に Register が衝突して panic する。
// 接続を持ち込む形にして登録そのものを避けている
type migrateDriver struct {
	db       *sql.DB
	isLocked atomic.Bool
}

func newMigrateDriver(db *sql.DB) (*migrateDriver, error) {
	d := &migrateDriver{db: db}
	if err := d.ensureVersionTable(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *migrateDriver) ensureVersionTable() error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (version uint64, dirty bool);
CREATE UNIQUE INDEX IF NOT EXISTS version_unique ON %s (version);`, migrationsTable, migrationsTable)
	if _, err := d.db.Exec(query); err != nil {
		return &migratedb.Error{OrigErr: err, Query: []byte(query)}
	}
	return nil
}

// Open URL からの生成は使わない。接続は必ず外から持ち込む
func (d *migrateDriver) Open(string) (migratedb.Driver, error) {
	return nil, fmt.Errorf("URL からのオープンは未対応")
}

// Close 共有している *sql.DB の寿命は呼び出し側が管理する
func (d *migrateDriver) Close() error {
	return nil
}

func (d *migrateDriver) Lock() error {
	if !d.isLocked.CompareAndSwap(false, true) {
		return migratedb.ErrLocked
	}
	return nil
}

func (d *migrateDriver) Unlock() error {
	if !d.isLocked.CompareAndSwap(true, false) {
		return migratedb.ErrNotLocked
	}
	return nil
}

func (d *migrateDriver) Run(migration io.Reader) error {
	statements, err := io.ReadAll(migration)
	if err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return &migratedb.Error{OrigErr: err}
	}
	if _, err := tx.Exec(string(statements)); err != nil {
		_ = tx.Rollback()
		return &migratedb.Error{OrigErr: err, Query: statements}
	}
	return tx.Commit()
}

func (d *migrateDriver) SetVersion(version int, dirty bool) error {
	tx, err := d.db.Begin()
	if err != nil {
		return &migratedb.Error{OrigErr: err}
	}

	deleteQuery := "DELETE FROM " + migrationsTable
	if _, err := tx.Exec(deleteQuery); err != nil {
		_ = tx.Rollback()
		return &migratedb.Error{OrigErr: err, Query: []byte(deleteQuery)}
	}

	// NilVersion かつ dirty でない場合は空のままにする
	if version >= 0 || (version == migratedb.NilVersion && dirty) {
		insertQuery := fmt.Sprintf("INSERT INTO %s (version, dirty) VALUES (?, ?)", migrationsTable)
		if _, err := tx.Exec(insertQuery, version, dirty); err != nil {
			_ = tx.Rollback()
			return &migratedb.Error{OrigErr: err, Query: []byte(insertQuery)}
		}
	}

	return tx.Commit()
}

func (d *migrateDriver) Version() (int, bool, error) {
	var (
		version int
		dirty   bool
	)
	query := "SELECT version, dirty FROM " + migrationsTable + " LIMIT 1"
	err := d.db.QueryRow(query).Scan(&version, &dirty)
	switch {
	case err == sql.ErrNoRows:
		return migratedb.NilVersion, false, nil
	case err != nil:
		return 0, false, &migratedb.Error{OrigErr: err, Query: []byte(query)}
	}
	return version, dirty, nil
}

func (d *migrateDriver) Drop() error {
	query := `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
	rows, err := d.db.Query(query)
	if err != nil {
		return &migratedb.Error{OrigErr: err, Query: []byte(query)}
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return &migratedb.Error{OrigErr: err, Query: []byte(query)}
	}

	for _, table := range tables {
		drop := "DROP TABLE IF EXISTS " + table
		if _, err := d.db.Exec(drop); err != nil {
			return &migratedb.Error{OrigErr: err, Query: []byte(drop)}
		}
	}

	if len(tables) > 0 {
		if _, err := d.db.Exec("VACUUM"); err != nil {
			return &migratedb.Error{OrigErr: err, Query: []byte("VACUUM")}
		}
	}

	return nil
}
