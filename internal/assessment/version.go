package assessment

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

var versionPattern = regexp.MustCompile(`v(\d+)`)

// IncrementVersion parses the trailing integer of a "vN" file version
// and returns "v(N+1)". A string with no vN pattern resets to "v1"
// rather than erroring.
func IncrementVersion(current string) string {
	m := versionPattern.FindStringSubmatch(current)
	if m == nil {
		return "v1"
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return "v1"
	}
	return fmt.Sprintf("v%d", n+1)
}

var (
	nonFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// GenerateFileName builds the export filename
// "{sanitized}_ZTMM_Assessment_{date}_{version}.json". The customer
// name is NFKD-folded so accented letters survive as their ASCII base,
// stripped of everything outside [A-Za-z0-9\s], whitespace runs become
// single underscores, and the result is capped at 50 characters.
//
// An empty customer name is tolerated (empty prefix); callers supply a
// placeholder name instead when they want a friendlier default.
func GenerateFileName(customerName, assessmentDate, version string) string {
	sanitized := norm.NFKD.String(customerName)
	sanitized = nonFilenameChars.ReplaceAllString(sanitized, "")
	sanitized = whitespaceRuns.ReplaceAllString(sanitized, "_")
	if len(sanitized) > 50 {
		sanitized = sanitized[:50]
	}

	if version == "" {
		version = "v1"
	}
	return fmt.Sprintf("%s_ZTMM_Assessment_%s_%s.json", sanitized, assessmentDate, version)
}
