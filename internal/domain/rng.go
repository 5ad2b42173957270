package domain

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

const seedWords = 16

// GenerateSeed produces fresh seed material for a game. This is the one
// point of true non-determinism per game; every shuffle afterwards is a
// deterministic function of (seed, use count).
func GenerateSeed() []int64 {
	buf := make([]byte, seedWords*8)
	if _, err := cryptorand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	seed := make([]int64, seedWords)
	for i := range seed {
		seed[i] = int64(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return seed
}

// countingSource wraps a PCG source and counts every draw, so the stream
// position can be persisted and restored across process restarts.
type countingSource struct {
	pcg  *rand.PCG
	used uint64
}

func (s *countingSource) Uint64() uint64 {
	s.used++
	return s.pcg.Uint64()
}

// Engine is a deterministic RNG bound to a game's seed material. An Engine
// rebuilt from the same seed with the same prior use count continues the
// stream exactly where it left off.
type Engine struct {
	src *countingSource
	rnd *rand.Rand
}

// NewEngine builds an engine from seed material, discarding used draws so
// the stream resumes at its persisted position.
func NewEngine(seed []int64, used uint64) *Engine {
	var hi, lo uint64
	for i, v := range seed {
		if i%2 == 0 {
			hi = hi*0x100000001b3 + uint64(v)
		} else {
			lo = lo*0x100000001b3 + uint64(v)
		}
	}

	src := &countingSource{pcg: rand.NewPCG(hi, lo)}
	for range used {
		src.pcg.Uint64()
	}
	src.used = used

	return &Engine{src: src, rnd: rand.New(src)}
}

func (e *Engine) Intn(n int) int { return e.rnd.IntN(n) }

// UseCount returns the cumulative number of draws consumed from the seeded
// stream. Persist it before saving a game so a later reload resumes the
// same logical stream.
func (e *Engine) UseCount() uint64 { return e.src.used }

// Shuffle permutes cards in place with a Fisher-Yates walk over rng.
func Shuffle(rng RNG, cards []string) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
