package domain

import "strings"

// BranchPrefix is the ref namespace subject to policy; everything outside it
// (tags, notes, custom namespaces) bypasses the gate entirely
const BranchPrefix = "refs/heads/"

// IsBranch reports whether ref names a branch with a non-empty short name
func IsBranch(ref string) bool {
	return strings.HasPrefix(ref, BranchPrefix) && len(ref) > len(BranchPrefix)
}

// ShortName strips the branch namespace prefix; policy lookup keys on this
func ShortName(ref string) string { return strings.TrimPrefix(ref, BranchPrefix) }

// IsZeroID reports whether id is the all-zero object id git uses for ref
// creation and deletion endpoints
func IsZeroID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] != '0' {
			return false
		}
	}
	return true
}
