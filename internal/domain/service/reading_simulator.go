package service

import (
	"math/rand"
	"sync"
	"time"

	"FloodGrid-App/internal/domain/model"
)

const simulatedNotes = "Simulated update"

// ReadingSimulator produces synthetic readings for the poll loop
type ReadingSimulator interface {
	Next() *model.Reading
}

type randomReadingSimulator struct {
	mu           sync.Mutex
	rng          *rand.Rand
	spec         model.GridSpec
	maxSurvivors int
}

// NewReadingSimulator creates a simulator seeded from the clock
func NewReadingSimulator(spec model.GridSpec) ReadingSimulator {
	return NewSeededReadingSimulator(spec, time.Now().UnixNano())
}

// NewSeededReadingSimulator creates a deterministic simulator
func NewSeededReadingSimulator(spec model.GridSpec, seed int64) ReadingSimulator {
	return &randomReadingSimulator{
		rng:          rand.New(rand.NewSource(seed)),
		spec:         spec,
		maxSurvivors: 4,
	}
}

// Next row/col uniform over the grid, 0..4 survivors, each flag a coin flip
func (s *randomReadingSimulator) Next() *model.Reading {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &model.Reading{
		Row:             s.rng.Intn(s.spec.Rows) + 1,
		Col:             s.rng.Intn(s.spec.Cols) + 1,
		Survivors:       s.rng.Intn(s.maxSurvivors + 1),
		BuildingDamage:  model.Flag(s.rng.Intn(2) == 1),
		Flood:           model.Flag(s.rng.Intn(2) == 1),
		FloodPrediction: model.Flag(s.rng.Intn(2) == 1),
		Notes:           simulatedNotes,
	}
}
