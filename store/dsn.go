package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// SQLiteDSN builds a modernc.org/sqlite source for path with foreign
// keys enabled. ":memory:" yields a shared in-memory database.
func SQLiteDSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?cache=shared&_pragma=foreign_keys(1)"
	}
	return fmt.Sprintf("file:%s?cache=shared&_pragma=foreign_keys(1)", path)
}

// MySQLDSN builds a go-sql-driver source. ParseTime is on so timestamp
// columns scan into time.Time.
func MySQLDSN(user, password, addr, dbname string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = addr
	cfg.DBName = dbname
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// PostgresDSN builds a lib/pq key=value source.
func PostgresDSN(host string, port int, user, password, dbname, sslmode string) string {
	kv := []string{
		"host=" + pgValue(host),
		fmt.Sprintf("port=%d", port),
		"user=" + pgValue(user),
		"dbname=" + pgValue(dbname),
		"sslmode=" + pgValue(sslmode),
	}
	if password != "" {
		kv = append(kv, "password="+pgValue(password))
	}
	return strings.Join(kv, " ")
}

// pgValue quotes a connection value per lib/pq rules: single quotes
// around values with spaces, backslash escapes inside.
func pgValue(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, ` '\`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// isConflict reports whether err is the dialect's unique-constraint
// violation.
func isConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
