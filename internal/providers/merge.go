package providers

import "github.com/tripweaver/layover-engine/internal/models"

// CandidateSet merges candidates from heterogeneous sources keyed by
// destination code. Merge rules: first-seen candidate wins the price
// and timing; the trending flag is OR-ed in from any source. Iteration
// preserves insertion order so merged output is deterministic.
type CandidateSet struct {
	byCode map[string]int
	items  []models.Candidate
}

func NewCandidateSet() *CandidateSet {
	return &CandidateSet{
		byCode: make(map[string]int),
	}
}

func (s *CandidateSet) Add(c models.Candidate) {
	if idx, ok := s.byCode[c.Code]; ok {
		if c.Trending {
			s.items[idx].Trending = true
		}
		return
	}
	s.byCode[c.Code] = len(s.items)
	s.items = append(s.items, c)
}

func (s *CandidateSet) AddAll(candidates []models.Candidate) {
	for _, c := range candidates {
		s.Add(c)
	}
}

func (s *CandidateSet) Len() int {
	return len(s.items)
}

// Items returns the merged candidates in insertion order.
func (s *CandidateSet) Items() []models.Candidate {
	out := make([]models.Candidate, len(s.items))
	copy(out, s.items)
	return out
}
