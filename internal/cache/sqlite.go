package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/user/fips-dashboard/internal/fips"
)

func NewSQLiteDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&SnapshotRecord{}); err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return db, nil
}

// Store looks up and records parsed README snapshots by commit SHA.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get returns the cached proposal set for a commit, or ok=false on a miss.
func (s *Store) Get(sha string) (map[string]fips.ProposalRecord, bool, error) {
	var record SnapshotRecord
	err := s.db.Where("commit_sha = ?", sha).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("looking up snapshot %s: %w", sha, err)
	}

	proposals, err := record.GetProposals()
	if err != nil {
		return nil, false, err
	}
	return proposals, true, nil
}

// Put records the proposal set parsed from one commit's README.
func (s *Store) Put(sha, month string, commitDate time.Time, proposals map[string]fips.ProposalRecord) error {
	record := SnapshotRecord{
		ID:         uuid.NewString(),
		CommitSHA:  sha,
		Month:      month,
		CommitDate: commitDate.Unix(),
		CreatedAt:  time.Now().Unix(),
	}
	if err := record.SetProposals(proposals); err != nil {
		return err
	}

	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("storing snapshot %s: %w", sha, err)
	}
	return nil
}
