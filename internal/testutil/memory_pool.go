// internal/testutil/memory_pool.go
package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/haspco/safety-catalog/internal/database"
	"github.com/haspco/safety-catalog/internal/models"
)

var productColumns = []string{
	"name", "category", "sub_category", "sub_sub_category", "distributor", "image",
	"description", "brief", "colors", "sizes", "color_variants", "gallery", "additional_info",
}

// MemoryPool understands the handful of statements the services issue and
// keeps rows in memory. Text columns hold whatever was bound, as Postgres
// would.
type MemoryPool struct {
	mu            sync.Mutex
	products      []map[string]interface{}
	manufacturers []map[string]interface{}
	nextID        int64
	statements    []string
	err           error
	closed        bool
}

func NewMemoryPool() *MemoryPool {
	return &MemoryPool{}
}

// FailWith makes every following statement return err.
func (m *MemoryPool) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MemoryPool) AddManufacturer(mf models.Manufacturer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.manufacturers = append(m.manufacturers, map[string]interface{}{
		"id":    int64(len(m.manufacturers) + 1),
		"name":  mf.Name,
		"logo":  mf.Logo,
		"brief": mf.Brief,
	})
}

func (m *MemoryPool) Statements() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.statements...)
}

func (m *MemoryPool) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *MemoryPool) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MemoryPool) Execute(_ context.Context, statement string, args ...interface{}) (database.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	normalized := strings.Join(strings.Fields(statement), " ")
	m.statements = append(m.statements, normalized)
	if m.err != nil {
		return nil, m.err
	}

	switch {
	case strings.HasPrefix(normalized, "INSERT INTO products"):
		if len(args) < len(productColumns) {
			return nil, fmt.Errorf("expected %d arguments, got %d", len(productColumns), len(args))
		}
		m.nextID++
		row := map[string]interface{}{"id": m.nextID}
		for i, column := range productColumns {
			row[column] = args[i]
		}
		m.products = append(m.products, row)
		return database.WriteResult{AffectedRows: 1, InsertID: m.nextID}, nil

	case normalized == "SELECT * FROM products ORDER BY id":
		return m.rows(m.products, func(map[string]interface{}) bool { return true }), nil

	case normalized == "SELECT * FROM products WHERE id = ?":
		id := cast.ToInt64(args[0])
		return m.rows(m.products, func(row map[string]interface{}) bool { return row["id"] == id }), nil

	case normalized == "SELECT * FROM manufacturers ORDER BY id":
		return m.rows(m.manufacturers, func(map[string]interface{}) bool { return true }), nil

	case strings.HasPrefix(normalized, "SELECT * FROM manufacturers WHERE LOWER(name) = LOWER(?)"):
		name := cast.ToString(args[0])
		return m.rows(m.manufacturers, func(row map[string]interface{}) bool {
			return strings.EqualFold(cast.ToString(row["name"]), name)
		}), nil

	case strings.HasPrefix(normalized, "SELECT COUNT(*) AS count FROM products WHERE LOWER(distributor) = LOWER(?)"):
		name := cast.ToString(args[0])
		var count int64
		for _, row := range m.products {
			if strings.EqualFold(cast.ToString(row["distributor"]), name) {
				count++
			}
		}
		return database.ReadResult{
			Rows:    []map[string]interface{}{{"count": count}},
			Columns: []string{"count"},
		}, nil
	}

	return nil, fmt.Errorf("unsupported statement %q", normalized)
}

func (m *MemoryPool) rows(table []map[string]interface{}, keep func(map[string]interface{}) bool) database.ReadResult {
	result := database.ReadResult{Rows: []map[string]interface{}{}, Columns: []string{}}
	for _, row := range table {
		if !keep(row) {
			continue
		}
		copied := make(map[string]interface{}, len(row))
		for k, v := range row {
			copied[k] = v
		}
		result.Rows = append(result.Rows, copied)
	}
	if len(table) > 0 {
		for column := range table[0] {
			result.Columns = append(result.Columns, column)
		}
	}
	return result
}

// ConnectedStore returns a store already attached to pool.
func ConnectedStore(pool database.Pool) *database.Store {
	store := database.NewStore(QuietLogger())
	store.Attach(pool)
	return store
}

func QuietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// CountingCache records cache traffic.
type CountingCache struct {
	mu          sync.Mutex
	products    []models.Product
	stored      bool
	Hits        int
	Sets        int
	Invalidates int
}

func (c *CountingCache) GetProducts(context.Context) ([]models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stored {
		return nil, false
	}
	c.Hits++
	return c.products, true
}

func (c *CountingCache) SetProducts(_ context.Context, products []models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
	c.stored = true
	c.Sets++
}

func (c *CountingCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
	c.stored = false
	c.Invalidates++
}

func (c *CountingCache) Close() error { return nil }
