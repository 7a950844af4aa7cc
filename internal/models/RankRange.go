package models

import (
	"strconv"
	"strings"
)

// RankRange is a 1-indexed inclusive window over ranked entries.
// An unset bound means "from the first" or "through the last".
type RankRange struct {
	Start    int
	End      int
	hasStart bool
	hasEnd   bool
}

func AllRanks() RankRange {
	return RankRange{}
}

func Between(start, end int) RankRange {
	return RankRange{Start: start, End: end, hasStart: true, hasEnd: true}
}

func From(start int) RankRange {
	return RankRange{Start: start, hasStart: true}
}

func Through(end int) RankRange {
	return RankRange{End: end, hasEnd: true}
}

func (r RankRange) IsAll() bool {
	return !r.hasStart && !r.hasEnd
}

// bounds clamps the window to size and reports false when it selects nothing.
func (r RankRange) bounds(size int) (int, int, bool) {
	start, end := 1, size
	if r.hasStart {
		start = r.Start
	}
	if r.hasEnd {
		end = r.End
	}
	if start <= 0 || end <= 0 || start > end {
		return 0, 0, false
	}
	if end > size {
		end = size
	}
	if start > end {
		return 0, 0, false
	}
	return start, end, true
}

func (r RankRange) String() string {
	if r.IsAll() {
		return "all"
	}
	var b strings.Builder
	if r.hasStart {
		b.WriteString(strconv.Itoa(r.Start))
	}
	b.WriteByte('-')
	if r.hasEnd {
		b.WriteString(strconv.Itoa(r.End))
	}
	return b.String()
}

// ParseRankRange reads "<start>-<end>". Anything else, including an empty
// string, a single number or non-numeric bounds, selects all ranks.
// Fields after the second dash are ignored.
func ParseRankRange(s string) RankRange {
	parts := strings.Split(s, "-")
	if len(parts) < 2 {
		return AllRanks()
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return AllRanks()
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return AllRanks()
	}
	return Between(start, end)
}
