package series

import "strings"

const (
	// MaxRemarks mirrors the number of remarks the upstream store keeps per sample.
	MaxRemarks = 10
	// RemarkSeparator joins remarks in a Meta comment.
	RemarkSeparator = " • "
)

// RemarkComment merges a single remark and a remark list into one comment:
// trimmed, non-empty, deduplicated in first-seen order, capped at MaxRemarks.
// Returns "" when nothing is left.
func RemarkComment(remark string, remarks []string) string {
	seen := make(map[string]struct{}, len(remarks)+1)
	kept := make([]string, 0, len(remarks)+1)

	add := func(r string) {
		r = strings.TrimSpace(r)
		if r == "" {
			return
		}
		if _, dup := seen[r]; dup {
			return
		}
		seen[r] = struct{}{}
		kept = append(kept, r)
	}

	add(remark)
	for _, r := range remarks {
		add(r)
	}

	if len(kept) > MaxRemarks {
		kept = kept[:MaxRemarks]
	}
	return strings.Join(kept, RemarkSeparator)
}

// NormalizeRemarks is RemarkComment wrapped as a Meta, nil when empty.
func NormalizeRemarks(remark string, remarks []string) *Meta {
	comment := RemarkComment(remark, remarks)
	if comment == "" {
		return nil
	}
	return &Meta{Comment: comment}
}
