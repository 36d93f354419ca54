package invoice

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var seqPlaceholder = regexp.MustCompile(`\{SEQ:([1-9])\}`)

// Generate renders a human-readable invoice number from a transaction id and
// a format template. The template may contain the literal placeholders
// {YYYY}, {YY}, {MM} and {DD} plus exactly one {SEQ:n} placeholder, where n
// is the minimum decimal width of the transaction id. Ids wider than n are
// rendered in full, never truncated.
func Generate(transactionID int64, format string, now time.Time) (string, error) {
	matches := seqPlaceholder.FindAllStringSubmatch(format, -1)
	if len(matches) != 1 {
		return "", fmt.Errorf("invoice format %q must contain exactly one {SEQ:n} placeholder", format)
	}

	out := format
	out = strings.ReplaceAll(out, "{YYYY}", now.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", now.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", now.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", now.Format("02"))

	width := int(matches[0][1][0] - '0')
	out = strings.Replace(out, matches[0][0], fmt.Sprintf("%0*d", width, transactionID), 1)

	return out, nil
}
