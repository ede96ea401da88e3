// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package roster parses the Staff and Student CSV roster formats (§6):
header-required Staff rows and headerless Student rows, both using the
standard library's encoding/csv for tokenizing — no example in the
retrieval pack reaches for a third-party CSV library, so this one
ambient concern stays on the standard library (see DESIGN.md).

Display names carried in these uploads are normalized to NFC and
trimmed of stray whitespace, grounded on the teacher's pkg/slug
normalization pipeline.
*/
package roster

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeName collapses runs of whitespace and applies NFC
// normalization, preserving the human-readable form (unlike
// pkg/slug.From, which strips to ASCII for URL use).
func normalizeName(s string) string {
	s = norm.NFC.String(s)
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
