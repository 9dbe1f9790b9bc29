// internal/database/executor.go
package database

import (
	"context"
	"strings"
	"unicode"
)

// Result is either a ReadResult or a WriteResult, picked by the statement
// kind.
type Result interface {
	isResult()
}

// ReadResult carries the rows of a read statement keyed by column name.
type ReadResult struct {
	Rows    []map[string]interface{}
	Columns []string
}

// WriteResult carries the outcome of INSERT, UPDATE, DELETE or REPLACE.
type WriteResult struct {
	AffectedRows int64
	InsertID     int64
}

func (ReadResult) isResult()  {}
func (WriteResult) isResult() {}

type StatementKind int

const (
	StatementRead StatementKind = iota
	StatementWrite
)

func (k StatementKind) String() string {
	if k == StatementWrite {
		return "write"
	}
	return "read"
}

var writeKeywords = map[string]bool{
	"INSERT":  true,
	"UPDATE":  true,
	"DELETE":  true,
	"REPLACE": true,
}

// ClassifyStatement reads the leading keyword of statement. Leading
// whitespace is skipped and case is ignored. Anything that is not a write
// keyword is a read.
func ClassifyStatement(statement string) StatementKind {
	trimmed := strings.TrimLeftFunc(statement, unicode.IsSpace)
	end := strings.IndexFunc(trimmed, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if end < 0 {
		end = len(trimmed)
	}
	if writeKeywords[strings.ToUpper(trimmed[:end])] {
		return StatementWrite
	}
	return StatementRead
}

// Executor runs one statement with positional parameters.
type Executor interface {
	Execute(ctx context.Context, statement string, args ...interface{}) (Result, error)
}

// fallbackExecutor answers every statement with an empty success shape.
type fallbackExecutor struct{}

func (fallbackExecutor) Execute(_ context.Context, statement string, _ ...interface{}) (Result, error) {
	if ClassifyStatement(statement) == StatementWrite {
		return WriteResult{}, nil
	}
	return ReadResult{Rows: []map[string]interface{}{}, Columns: []string{}}, nil
}
