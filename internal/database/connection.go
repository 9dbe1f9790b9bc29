// internal/database/connection.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/haspco/safety-catalog/internal/config"
	"github.com/haspco/safety-catalog/internal/models"
)

// Initialize opens a gorm handle, applies pool settings and pings within
// ctx.
func Initialize(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}
	gormConfig.DisableAutomaticPing = true

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.ProductRecord{},
		&models.ManufacturerRecord{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes(db)
	return nil
}

func createIndexes(db *gorm.DB) {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_distributor_lower ON products(LOWER(distributor))",
		"CREATE INDEX IF NOT EXISTS idx_products_category_path ON products(category, sub_category, sub_sub_category)",
		"CREATE INDEX IF NOT EXISTS idx_manufacturers_name_lower ON manufacturers(LOWER(name))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).WithField("index", index).Warn("failed to create index")
		}
	}
}

// SeedManufacturers fills an empty manufacturers table.
func SeedManufacturers(db *gorm.DB, manufacturers []models.Manufacturer) error {
	var count int64
	if err := db.Model(&models.ManufacturerRecord{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count manufacturers: %w", err)
	}
	if count > 0 || len(manufacturers) == 0 {
		return nil
	}

	records := make([]models.ManufacturerRecord, 0, len(manufacturers))
	for _, m := range manufacturers {
		records = append(records, models.ManufacturerRecord{Name: m.Name, Logo: m.Logo, Brief: m.Brief})
	}
	if err := db.Create(&records).Error; err != nil {
		return fmt.Errorf("failed to seed manufacturers: %w", err)
	}

	logrus.WithField("count", len(records)).Info("seeded manufacturers")
	return nil
}

// GormConnector opens a Postgres pool and prepares the schema.
type GormConnector struct {
	Config        config.DatabaseConfig
	Manufacturers []models.Manufacturer
}

func (c *GormConnector) Connect(ctx context.Context) (Pool, error) {
	db, err := Initialize(ctx, c.Config)
	if err != nil {
		return nil, err
	}

	if c.Config.AutoMigrate {
		if err := RunMigrations(db); err != nil {
			logrus.WithError(err).Warn("migrations failed; continuing with existing schema")
		} else if err := SeedManufacturers(db, c.Manufacturers); err != nil {
			logrus.WithError(err).Warn("manufacturer seed failed")
		}
	}

	return NewGormPool(db), nil
}

var returningClause = regexp.MustCompile(`(?i)\bRETURNING\b`)

// GormPool executes raw statements through gorm. Placeholders are written
// as "?".
type GormPool struct {
	db *gorm.DB
}

func NewGormPool(db *gorm.DB) *GormPool {
	return &GormPool{db: db}
}

func (p *GormPool) Execute(ctx context.Context, statement string, args ...interface{}) (Result, error) {
	if ClassifyStatement(statement) == StatementWrite {
		return p.write(ctx, statement, args)
	}
	return p.read(ctx, statement, args)
}

func (p *GormPool) read(ctx context.Context, statement string, args []interface{}) (Result, error) {
	rows, err := p.db.WithContext(ctx).Raw(statement, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

func (p *GormPool) write(ctx context.Context, statement string, args []interface{}) (Result, error) {
	if !returningClause.MatchString(statement) {
		tx := p.db.WithContext(ctx).Exec(statement, args...)
		if tx.Error != nil {
			return nil, fmt.Errorf("statement failed: %w", tx.Error)
		}
		return WriteResult{AffectedRows: tx.RowsAffected}, nil
	}

	rows, err := p.db.WithContext(ctx).Raw(statement, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("statement failed: %w", err)
	}
	defer rows.Close()

	read, err := scanRows(rows)
	if err != nil {
		return nil, err
	}

	result := WriteResult{AffectedRows: int64(len(read.Rows))}
	if len(read.Rows) > 0 && len(read.Columns) > 0 {
		if id, err := cast.ToInt64E(read.Rows[0][read.Columns[0]]); err == nil {
			result.InsertID = id
		}
	}
	return result, nil
}

func (p *GormPool) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

func scanRows(rows *sql.Rows) (ReadResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return ReadResult{}, fmt.Errorf("failed to read columns: %w", err)
	}

	result := ReadResult{Rows: []map[string]interface{}{}, Columns: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		targets := make([]interface{}, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return ReadResult{}, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
			} else {
				row[column] = values[i]
			}
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return ReadResult{}, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return result, nil
}
