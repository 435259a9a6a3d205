package extraction

import (
	"regexp"
	"strings"
)

// courseCodePattern matches codes such as IT079, MA001 or CSAI301.
var courseCodePattern = regexp.MustCompile(`\b[A-Z]{2,4}\d{3,4}\b`)

var stopWords = map[string]struct{}{
	"what": {}, "are": {}, "is": {}, "the": {}, "for": {}, "of": {},
	"which": {}, "to": {}, "do": {}, "i": {}, "as": {}, "a": {}, "an": {},
	"?": {}, "show": {}, "me": {}, "all": {}, "before": {}, "taking": {},
	"take": {}, "should": {}, "need": {},
	"course": {}, "courses": {},
	"prerequisite": {}, "prerequisites": {},
	"require": {}, "requires": {}, "required": {}, "requirements": {},
}

// minKeywordLen drops tokens shorter than three characters.
const minKeywordLen = 3

// ExtractCourseIdentifier returns the first course code in query, or the
// remaining keywords once question words are removed. An empty result means
// nothing usable was found and must not be sent to the catalog.
func ExtractCourseIdentifier(query string) string {
	if code := courseCodePattern.FindString(strings.ToUpper(query)); code != "" {
		return code
	}

	var keywords []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if len([]rune(w)) < minKeywordLen {
			continue
		}
		keywords = append(keywords, w)
	}
	return strings.Join(keywords, " ")
}
