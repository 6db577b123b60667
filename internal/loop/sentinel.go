package loop

import (
	"regexp"
	"strings"
)

// DoneSentinel is the marker Claude prints when all work is complete.
const DoneSentinel = "<CLAUDE>DONE</CLAUDE>"

// blockedPattern captures the explanation in <CLAUDE>BLOCKED: ...</CLAUDE>.
// The explanation may span lines; the match is non-greedy so it stops at the
// first closing marker.
var blockedPattern = regexp.MustCompile(`(?s)<CLAUDE>BLOCKED:\s*(.+?)</CLAUDE>`)

// VerdictKind is the outcome of scanning one iteration's output.
type VerdictKind int

const (
	VerdictContinue VerdictKind = iota
	VerdictDone
	VerdictBlocked
)

// String returns a human-readable name for the verdict.
func (k VerdictKind) String() string {
	switch k {
	case VerdictDone:
		return "done"
	case VerdictBlocked:
		return "blocked"
	default:
		return "continue"
	}
}

// Verdict is the decision taken after an iteration. Explanation is only set
// for VerdictBlocked.
type Verdict struct {
	Kind        VerdictKind
	Explanation string
}

// CheckOutput scans the full output of an iteration for sentinels.
// The done marker takes priority over a blocked marker.
func CheckOutput(output string) Verdict {
	if matchDone(output) {
		return Verdict{Kind: VerdictDone}
	}
	if explanation, ok := matchBlocked(output); ok {
		return Verdict{Kind: VerdictBlocked, Explanation: explanation}
	}
	return Verdict{Kind: VerdictContinue}
}

func matchDone(output string) bool {
	return strings.Contains(output, DoneSentinel)
}

func matchBlocked(output string) (string, bool) {
	m := blockedPattern.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
