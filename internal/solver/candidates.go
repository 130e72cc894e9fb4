package solver

// CandidateStore is the in-memory set of words still viable this session.
// It is loaded from the persisted list at session start and only shrinks
// until the next session replaces it.
type CandidateStore struct {
	words  []string
	pruned []string
}

// NewCandidateStore copies words into a new store. Words are expected to be
// normalized (uppercase, fixed length) by the loader.
func NewCandidateStore(words []string) *CandidateStore {
	return &CandidateStore{words: append([]string(nil), words...)}
}

// Len returns the number of remaining candidates.
func (s *CandidateStore) Len() int { return len(s.words) }

// Words returns a copy of the remaining candidates, in order.
func (s *CandidateStore) Words() []string { return append([]string(nil), s.words...) }

// At returns the i-th remaining candidate.
func (s *CandidateStore) At(i int) string { return s.words[i] }

// Contains reports whether word is still a candidate.
func (s *CandidateStore) Contains(word string) bool {
	for _, w := range s.words {
		if w == word {
			return true
		}
	}
	return false
}

// Remove drops word from the store. It reports whether the word was present.
func (s *CandidateStore) Remove(word string) bool {
	for i, w := range s.words {
		if w == word {
			s.words = append(s.words[:i], s.words[i+1:]...)
			s.pruned = append(s.pruned, word)
			return true
		}
	}
	return false
}

// Apply replaces the candidates with those consistent with c and returns the
// words that were eliminated.
func (s *CandidateStore) Apply(c *Constraints) []string {
	kept := Filter(s.words, c)
	if len(kept) == len(s.words) {
		return nil
	}
	alive := make(map[string]struct{}, len(kept))
	for _, w := range kept {
		alive[w] = struct{}{}
	}
	var dropped []string
	for _, w := range s.words {
		if _, ok := alive[w]; !ok {
			dropped = append(dropped, w)
		}
	}
	s.words = kept
	s.pruned = append(s.pruned, dropped...)
	return dropped
}

// Pruned returns every word removed from the store this session, in removal
// order.
func (s *CandidateStore) Pruned() []string { return append([]string(nil), s.pruned...) }
