package domain

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// MatchID is an upstream match identifier such as "EUW1_6543210987". The
// numeric suffix grows monotonically per platform and is the sync cursor.
type MatchID string

// Seq returns the numeric part of the identifier, or -1 when there is none.
func (id MatchID) Seq() int64 {
	s := string(id)
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		s = s[i+1:]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return -1
	}
	return n
}

func (id MatchID) Platform() string {
	s := string(id)
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		return s[:i]
	}
	return ""
}

// Compare orders identifiers numerically when both carry a sequence and
// lexically otherwise. "EUW1_999" sorts before "EUW1_1000".
func (id MatchID) Compare(other MatchID) int {
	a, b := id.Seq(), other.Seq()
	if a >= 0 && b >= 0 && id.Platform() == other.Platform() {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
	return strings.Compare(string(id), string(other))
}

func (id MatchID) NewerThan(other MatchID) bool {
	return id.Compare(other) > 0
}

func (id MatchID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both string and bare numeric identifiers.
func (id *MatchID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = MatchID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = MatchID(n.String())
	return nil
}
