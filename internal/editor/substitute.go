package editor

import "regexp"

// substitution is one typed-sequence replacement. The pattern fires when its
// final rune is typed, with the earlier runes immediately before the cursor.
type substitution struct {
	pattern     string
	replacement string
}

// substitutions is checked in order; the first matching suffix wins.
var substitutions = []substitution{
	{"->", "→"},
	{"<-", "←"},
	{"=>", "⇒"},
	{"(c)", "©"},
	{"(r)", "®"},
	{"(tm)", "™"},
	{"+-", "±"},
	{"...", "…"},
}

// regexSubstitution rewrites a pattern-matched tail of the typed run. The
// expression must be anchored with $ so it only fires at the cursor.
type regexSubstitution struct {
	pattern     *regexp.Regexp
	replacement string
}

var regexSubstitutions = []regexSubstitution{
	// 3x4 becomes 3×4 once the second digit lands.
	{regexp.MustCompile(`(\d)x(\d)$`), "$1×$2"},
	{regexp.MustCompile(`(\d)/2$`), "$1⁄2"},
}

// matchSubstitution reports the replacement completed by the given run of
// recently typed runes. The returned pattern is the exact text to remove
// before inserting the replacement.
func matchSubstitution(recent []rune) (substitution, bool) {
	s := string(recent)
	for _, sub := range substitutions {
		if hasSuffix(s, sub.pattern) {
			return sub, true
		}
	}
	for _, sub := range regexSubstitutions {
		if loc := sub.pattern.FindStringIndex(s); loc != nil {
			matched := s[loc[0]:]
			return substitution{
				pattern:     matched,
				replacement: sub.pattern.ReplaceAllString(matched, sub.replacement),
			}, true
		}
	}
	return substitution{}, false
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
