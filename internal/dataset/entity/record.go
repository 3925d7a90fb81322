package entity

type Record struct {
	ID   string
	Text string
}

// RecordSet maps identifiers to texts and remembers first-insertion order.
// Putting an existing identifier replaces its text in place.
type RecordSet struct {
	index map[string]int
	texts []string
}

func NewRecordSet() *RecordSet {
	return &RecordSet{index: make(map[string]int)}
}

func (s *RecordSet) Put(rec Record) {
	if i, ok := s.index[rec.ID]; ok {
		s.texts[i] = rec.Text
		return
	}

	s.index[rec.ID] = len(s.texts)
	s.texts = append(s.texts, rec.Text)
}

func (s *RecordSet) Get(id string) (string, bool) {
	i, ok := s.index[id]
	if !ok {
		return "", false
	}
	return s.texts[i], true
}

func (s *RecordSet) Len() int {
	return len(s.texts)
}

// Texts returns a copy of the values in insertion order.
func (s *RecordSet) Texts() []string {
	out := make([]string, len(s.texts))
	copy(out, s.texts)
	return out
}
