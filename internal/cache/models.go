package cache

import (
	"encoding/json"
	"fmt"

	"github.com/user/fips-dashboard/internal/fips"
)

// SnapshotRecord caches the parsed proposal set of one README commit.
// Content at a commit SHA is immutable, so rows never need invalidation.
type SnapshotRecord struct {
	ID         string `gorm:"primaryKey"`
	CommitSHA  string `gorm:"uniqueIndex;not null"`
	Month      string `gorm:"index"`
	CommitDate int64
	Proposals  string
	CreatedAt  int64 `gorm:"not null"`
}

func (r *SnapshotRecord) GetProposals() (map[string]fips.ProposalRecord, error) {
	if r.Proposals == "" {
		return nil, nil
	}
	var proposals map[string]fips.ProposalRecord
	if err := json.Unmarshal([]byte(r.Proposals), &proposals); err != nil {
		return nil, fmt.Errorf("unmarshaling proposals: %w", err)
	}
	return proposals, nil
}

func (r *SnapshotRecord) SetProposals(proposals map[string]fips.ProposalRecord) error {
	data, err := json.Marshal(proposals)
	if err != nil {
		return fmt.Errorf("marshaling proposals: %w", err)
	}
	r.Proposals = string(data)
	return nil
}
