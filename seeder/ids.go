package seeder

import "fmt"

// Sequence hands out monotonic, zero-padded identifiers like CUST00001.
// Identifier assignment is independent of slice position so entity order is
// never semantically significant.
type Sequence struct {
	prefix string
	width  int
	next   int
}

func NewSequence(prefix string, width int) *Sequence {
	return &Sequence{prefix: prefix, width: width, next: 1}
}

// Next returns the next identifier in the sequence. IDs are never reused.
func (s *Sequence) Next() string {
	id := fmt.Sprintf("%s%0*d", s.prefix, s.width, s.next)
	s.next++
	return id
}
