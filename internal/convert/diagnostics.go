// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"
)

// WarningMarker is the tag the engine puts on lines worth showing to users.
const WarningMarker = "[WARNING]"

// Diagnostics holds the non-empty lines the engine wrote to its diagnostic
// stream during a single call.
type Diagnostics struct {
	Lines []string
}

// ParseDiagnostics splits captured stderr into trimmed, non-empty lines.
func ParseDiagnostics(stderr string) Diagnostics {
	var d Diagnostics
	for line := range strings.SplitSeq(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			d.Lines = append(d.Lines, line)
		}
	}
	return d
}

// Warnings returns the lines carrying WarningMarker. Everything else is
// noise for the user.
func (d Diagnostics) Warnings() []string {
	var out []string
	for _, l := range d.Lines {
		if strings.Contains(l, WarningMarker) {
			out = append(out, l)
		}
	}
	return out
}

// HasWarnings reports whether any line carries WarningMarker.
func (d Diagnostics) HasWarnings() bool {
	return len(d.Warnings()) > 0
}

// Notice formats the warnings for a dialog. It returns "" when there are
// none. Math problems get a dedicated explanation since they are the most
// common cause of warnings in pasted model output.
func (d Diagnostics) Notice() string {
	warnings := d.Warnings()
	if len(warnings) == 0 {
		return ""
	}
	joined := strings.Join(warnings, "\n")

	if strings.Contains(joined, "TeX math") {
		return fmt.Sprintf(`Problems were found in math expressions in the text.

Possible causes:
  • incomplete LaTeX math expressions
  • missing braces or parentheses
  • invalid math syntax

Details:
%s

The document was created anyway, but check the math content.`, joined)
	}

	return fmt.Sprintf(`Some problems were detected during conversion.

%s

The document was created anyway, but check the result.`, joined)
}
