package helpers

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang/glog"
	_ "github.com/lib/pq"
)

// MaxDBConnections caps the pool
const MaxDBConnections int = 40

var db *sql.DB

// DBConfig stores the connection information used by InitDBConnection to
// establish a connection to the database
type DBConfig struct {
	Host     string
	Port     int64
	Database string
	Username string
	Password string
}

// InitDBConnection opens the pool used by the package, download and audit
// stores. It is fatal when the database cannot be reached.
func InitDBConnection(c DBConfig) {
	dsn := fmt.Sprintf(
		"user=%s dbname=%s host=%s port=%d password=%s sslmode=disable",
		c.Username,
		c.Database,
		c.Host,
		c.Port,
		c.Password,
	)

	var err error
	db, err = sql.Open("postgres", dsn)
	if err != nil {
		glog.Fatalf("Database connection failed: %v", err)
	}

	if err = db.Ping(); err != nil {
		glog.Fatalf("Database %s on %s:%d is unreachable: %v", c.Database, c.Host, c.Port, err)
	}

	db.SetMaxOpenConns(MaxDBConnections)
}

// GetConnection returns a connection from the connection pool of the already
// instantiated db object
func GetConnection() (*sql.DB, error) {
	if db == nil {
		return nil, errors.New("database connection has not been initialised")
	}
	return db, nil
}
