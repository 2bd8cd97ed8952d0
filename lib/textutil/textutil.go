package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "ã", "a", "â", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "õ", "o", "ô", "o",
	"ú", "u",
	"ç", "c",
)

// NormalizeLabel lowercases a portal field label and strips accents and
// whitespace so that minor markup drift still matches.
func NormalizeLabel(label string) string {
	label = strings.ToLower(label)
	label = strings.Trim(label, " \n\t:")
	label = accentReplacer.Replace(label)
	label = whitespaceRegex.ReplaceAllString(label, "")
	return label
}

// SplitLabelValue splits a "Label: value" line. ok is false when the
// line carries no label.
func SplitLabelValue(line string) (label, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}
