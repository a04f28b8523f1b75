package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
)

// Op constants name the failing storage command for error context.
// The sqlite backend reuses the Redis command names so callers see one vocabulary.
const (
	OpPing    = "PING"
	OpDel     = "DEL"
	OpExists  = "EXISTS"
	OpGet     = "GET"
	OpSet     = "SET"
	OpRPush   = "RPUSH"
	OpLRange  = "LRANGE"
	OpLRem    = "LREM"
	OpIncrBy  = "INCRBY"
	OpExpire  = "EXPIRE"
	OpMigrate = "MIGRATE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
