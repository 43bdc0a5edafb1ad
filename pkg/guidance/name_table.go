package guidance

import (
	"strings"

	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
)

// NameTable resolves name ids of the road graph into street names.
type NameTable struct {
	names []string
}

func NewNameTable(names []string) *NameTable {
	return &NameTable{names: names}
}

func (nt *NameTable) GetNameForId(nameId datastructure.Index) string {
	if nameId == datastructure.InvalidNameId || int(nameId) >= len(nt.names) {
		return ""
	}
	return nt.names[nameId]
}

// SuffixTable strips locale-specific street-name suffixes so that
// "Jalan Sudirman" and "Sudirman Street" style variants compare equal on
// their core name.
type SuffixTable struct {
	suffixes map[string]struct{}
}

func NewSuffixTable(suffixes []string) *SuffixTable {
	set := make(map[string]struct{}, len(suffixes))
	for _, s := range suffixes {
		set[strings.ToLower(s)] = struct{}{}
	}
	return &SuffixTable{suffixes: set}
}

func DefaultSuffixTable() *SuffixTable {
	return NewSuffixTable([]string{
		"street", "st", "road", "rd", "avenue", "ave", "drive", "dr",
		"lane", "ln", "boulevard", "blvd", "way", "jalan", "jl",
		"north", "south", "east", "west",
	})
}

func (st *SuffixTable) IsSuffix(token string) bool {
	_, ok := st.suffixes[strings.ToLower(token)]
	return ok
}

// stripSuffixes removes leading and trailing suffix tokens of a name.
func (st *SuffixTable) stripSuffixes(name string) string {
	tokens := strings.Fields(strings.ToLower(name))
	begin, end := 0, len(tokens)
	for begin < end && st.IsSuffix(tokens[begin]) {
		begin++
	}
	for end > begin && st.IsSuffix(tokens[end-1]) {
		end--
	}
	if begin == end {
		// the name consists of suffix tokens only, keep it as is
		return strings.ToLower(name)
	}
	return strings.Join(tokens[begin:end], " ")
}

// RequiresNameAnnounced reports whether moving between the two names is a
// real name change worth announcing. empty names never announce, identical
// names after suffix stripping do not either.
func RequiresNameAnnounced(fromName, toName string, suffixTable *SuffixTable) bool {
	if fromName == "" || toName == "" {
		return false
	}
	if fromName == toName {
		return false
	}
	return suffixTable.stripSuffixes(fromName) != suffixTable.stripSuffixes(toName)
}
