package scheduler

import (
	"hash/fnv"
	"math/rand"
	"sort"
)

// newTieBreaker returns a pseudo-random generator scoped to this generation
// call, seeded from (userID, seed). A fresh instance per call keeps
// concurrent requests from corrupting each other's ordering, which a shared
// seeded global generator would.
func newTieBreaker(userID, seed string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(userID))
	h.Write([]byte{0})
	h.Write([]byte(seed))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// orderPool sorts candidates descending by score with a stable tie-break.
// With a generator, each candidate gets a per-call pseudo-random tie key
// (assigned in ID order so the assignment itself is deterministic). Without
// one, the candidate's own ID breaks ties, so ordering is reproducible
// run-to-run for unchanged input even without a seed.
func orderPool(cands []*Candidate, rng *rand.Rand) {
	if rng != nil {
		sort.Slice(cands, func(i, j int) bool { return cands[i].ID < cands[j].ID })
		for _, c := range cands {
			c.tie = rng.Uint64()
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		if rng != nil && cands[i].tie != cands[j].tie {
			return cands[i].tie < cands[j].tie
		}
		return cands[i].ID < cands[j].ID
	})
}

// lessCandidate reports whether a ranks ahead of b under the same ordering
// orderPool applies. Used by the solver's global fallback scan.
func lessCandidate(a, b *Candidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.tie != b.tie {
		return a.tie < b.tie
	}
	return a.ID < b.ID
}
