package db

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// Database drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// sqlDriverName maps a store driver to the database/sql driver registered for it.
func sqlDriverName(driver string) (string, error) {
	switch driver {
	case DriverPostgres, "postgresql":
		return "postgres", nil
	case DriverMySQL:
		return "mysql", nil
	case DriverSQLite, "sqlite3":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database type: %s", driver)
	}
}

// OpenSQL opens a database/sql pool for driver and pings it. The caller owns
// the returned pool.
func OpenSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	driverName, err := sqlDriverName(driver)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open a database connection: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if driverName == "sqlite3" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func dialector(driver string, conn *sql.DB) (gorm.Dialector, error) {
	switch driver {
	case DriverPostgres, "postgresql":
		return postgres.New(postgres.Config{Conn: conn}), nil
	case DriverMySQL:
		return mysql.New(mysql.Config{Conn: conn}), nil
	case DriverSQLite, "sqlite3":
		return &sqlite.Dialector{Conn: conn}, nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", driver)
	}
}

// OpenGorm opens driver/dsn through OpenSQL and wraps the pool in gorm.
func OpenGorm(ctx context.Context, driver, dsn string) (*gorm.DB, error) {
	conn, err := OpenSQL(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}

	d, err := dialector(driver, conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	gdb, err := gorm.Open(d, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return gdb, nil
}
