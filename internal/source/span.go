package source

import (
	"fmt"
)

type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && other.Start >= s.Start && other.End <= s.End
}

// Clamp trims the span to [0, size).
func (s Span) Clamp(size uint32) Span {
	if s.Start > size {
		s.Start = size
	}
	if s.End > size {
		s.End = size
	}
	if s.End < s.Start {
		s.End = s.Start
	}
	return s
}
