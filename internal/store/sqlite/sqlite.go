// Package sqlite records match runs in a SQLite database.
package sqlite

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"docmatch/internal/domain"
)

type runRecord struct {
	ID        uint `gorm:"primaryKey"`
	TrainDir  string
	TestDir   string
	TopN      int
	CreatedAt time.Time
	Matches   []matchRecord `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

func (runRecord) TableName() string { return "runs" }

type matchRecord struct {
	ID         uint   `gorm:"primaryKey"`
	RunID      uint   `gorm:"index"`
	QueryID    string `gorm:"index"`
	Rank       int
	DocumentID string
	Score      float64
}

func (matchRecord) TableName() string { return "matches" }

// Store implements domain.MatchStore.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&runRecord{}, &matchRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveRun stores the run and every ranked match in one transaction.
func (s *Store) SaveRun(run domain.Run) error {
	rec := runRecord{TrainDir: run.TrainDir, TestDir: run.TestDir, TopN: run.TopN}
	for _, c := range run.Cases {
		for rank, m := range c.Matches {
			rec.Matches = append(rec.Matches, matchRecord{
				QueryID:    c.QueryID,
				Rank:       rank + 1,
				DocumentID: m.DocumentID,
				Score:      m.Score,
			})
		}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rec).Error
	})
}

// LatestRun loads the most recent run with its matches grouped per query,
// in the order they were ranked.
func (s *Store) LatestRun() (*domain.Run, error) {
	var rec runRecord
	err := s.db.Preload("Matches", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Order("id DESC").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	run := &domain.Run{TrainDir: rec.TrainDir, TestDir: rec.TestDir, TopN: rec.TopN}
	pos := make(map[string]int)
	for _, m := range rec.Matches {
		i, ok := pos[m.QueryID]
		if !ok {
			i = len(run.Cases)
			pos[m.QueryID] = i
			run.Cases = append(run.Cases, domain.Case{QueryID: m.QueryID})
		}
		run.Cases[i].Matches = append(run.Cases[i].Matches, domain.Match{DocumentID: m.DocumentID, Score: m.Score})
	}
	return run, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
