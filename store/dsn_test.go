package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/forma/store"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?cache=shared&_pragma=foreign_keys(1)", store.SQLiteDSN(":memory:"))
	assert.Equal(t, "file:shop.db?cache=shared&_pragma=foreign_keys(1)", store.SQLiteDSN("shop.db"))
}

func TestMySQLDSN(t *testing.T) {
	assert.Equal(t, "amira:s3cret@tcp(db.internal:3306)/forma?parseTime=true",
		store.MySQLDSN("amira", "s3cret", "db.internal:3306", "forma"))
	assert.Equal(t, "amira@tcp(localhost:3306)/forma?parseTime=true",
		store.MySQLDSN("amira", "", "localhost:3306", "forma"))
}

func TestPostgresDSN(t *testing.T) {
	assert.Equal(t,
		"host=db.internal port=5432 user=amira dbname=forma sslmode=disable password=s3cret",
		store.PostgresDSN("db.internal", 5432, "amira", "s3cret", "forma", "disable"))
	assert.Equal(t,
		"host=localhost port=5432 user=amira dbname=forma sslmode=require",
		store.PostgresDSN("localhost", 5432, "amira", "", "forma", "require"))
	assert.Equal(t,
		`host=localhost port=5432 user='ami ra' dbname=forma sslmode=disable password='it\'s'`,
		store.PostgresDSN("localhost", 5432, "ami ra", "it's", "forma", "disable"))
}
