package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// DefaultAccountNumberFloor is the value the sequence starts above when no
// accounts exist yet.
const DefaultAccountNumberFloor = 1_000_000

type maxNumberSource interface {
	MaxAccountNumber(ctx context.Context) (int64, error)
}

// NumberSequence issues unique, strictly increasing account numbers. It is
// seeded once from the highest number already persisted and guarded by a
// mutex so concurrent callers never see a duplicate.
type NumberSequence struct {
	mu   sync.Mutex
	last int64
}

func NewNumberSequence(ctx context.Context, accounts maxNumberSource, floor int64) (*NumberSequence, error) {
	if floor <= 0 {
		floor = DefaultAccountNumberFloor
	}
	max, err := accounts.MaxAccountNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewNumberSequence: %w", err)
	}
	if max < floor {
		max = floor
	}
	return &NumberSequence{last: max}, nil
}

func (s *NumberSequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return strconv.FormatInt(s.last, 10)
}
