// Package idgen issues human readable, monotonically increasing identifiers.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"memberclub-backend/internal/domain"
)

const (
	RentalPrefix = "RENT-"
	DefaultWidth = 3
)

// Sequence issues PREFIX + zero padded counter. Numbers wider than the pad
// are printed in full, so RENT-999 is followed by RENT-1000.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	width  int
	next   int
}

func NewSequence(prefix string, width int) *Sequence {
	return &Sequence{prefix: prefix, width: width, next: 1}
}

func NewRentalSequence() *Sequence {
	return NewSequence(RentalPrefix, DefaultWidth)
}

func (s *Sequence) Prefix() string { return s.prefix }

// Next returns the next identifier and advances the counter.
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("%s%0*d", s.prefix, s.width, s.next)
	s.next++
	return id
}

// Peek returns the counter value the next call to Next will use.
func (s *Sequence) Peek() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

func (s *Sequence) Reset() {
	s.mu.Lock()
	s.next = 1
	s.mu.Unlock()
}

// Parse extracts the numeric suffix of id. It reports false for ids with a
// different prefix or a non numeric suffix.
func (s *Sequence) Parse(id string) (int, bool) {
	suffix, ok := strings.CutPrefix(id, s.prefix)
	if !ok || suffix == "" {
		return 0, false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Observe advances the counter past id if id belongs to this sequence.
// Malformed ids are ignored and reported as false.
func (s *Sequence) Observe(id string) bool {
	n, ok := s.Parse(id)
	if !ok {
		return false
	}
	s.mu.Lock()
	if n >= s.next {
		s.next = n + 1
	}
	s.mu.Unlock()
	return true
}

// Recover resets the counter and sets it to max(parsed ids) + 1. It returns
// the ids that could not be parsed.
func (s *Sequence) Recover(ids []string) []string {
	s.Reset()
	var skipped []string
	for _, id := range ids {
		if !s.Observe(id) {
			skipped = append(skipped, id)
		}
	}
	return skipped
}

// MemberSequence issues integer member ids.
type MemberSequence struct {
	mu   sync.Mutex
	next int
}

func NewMemberSequence() *MemberSequence {
	return &MemberSequence{next: 1}
}

func (s *MemberSequence) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	return id
}

func (s *MemberSequence) Peek() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// SetNext assigns the value the next call to Next returns.
func (s *MemberSequence) SetNext(n int) {
	s.mu.Lock()
	s.next = n
	s.mu.Unlock()
}

// ItemSequences holds one sequence per item kind.
type ItemSequences struct {
	byKind map[domain.ItemKind]*Sequence
}

func NewItemSequences() *ItemSequences {
	seqs := &ItemSequences{byKind: make(map[domain.ItemKind]*Sequence)}
	for _, kind := range domain.ItemKinds() {
		seqs.byKind[kind] = NewSequence(kind.IDPrefix(), DefaultWidth)
	}
	return seqs
}

// Next issues the next id for kind.
func (s *ItemSequences) Next(kind domain.ItemKind) (string, error) {
	seq, ok := s.byKind[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown item type %q", domain.ErrInvalidItem, kind)
	}
	return seq.Next(), nil
}

// Recover resets every kind's counter from the loaded items.
func (s *ItemSequences) Recover(items []domain.Item) {
	for _, seq := range s.byKind {
		seq.Reset()
	}
	for _, item := range items {
		if seq, ok := s.byKind[item.Kind()]; ok {
			seq.Observe(item.Base().ID)
		}
	}
}
