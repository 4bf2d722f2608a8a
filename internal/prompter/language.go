package prompter

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// stopwords are a handful of very common function words per language. None
// of the retrieved example repos bundle a statistical language-detection
// library, so detectLanguage makes do with a stopword-frequency vote — good
// enough for the "best-effort" language tag the retrieval prompter needs to
// attach, and it still routes its result through golang.org/x/text/language
// to produce a normalized BCP-47 tag rather than an ad-hoc string.
var stopwords = map[language.Tag][]string{
	language.French:  {"le", "la", "les", "de", "des", "et", "est", "une", "un", "que", "pour", "dans", "qui", "sur"},
	language.English: {"the", "a", "an", "and", "is", "of", "to", "in", "that", "for", "on", "with", "as"},
}

var wordSplit = regexp.MustCompile(`[a-zà-ÿ]+`)

// detectLanguage returns a best-effort BCP-47 language tag for text, or ""
// if no signal was found at all.
func detectLanguage(text string) string {
	words := wordSplit.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return ""
	}

	counts := make(map[language.Tag]int, len(stopwords))
	for _, w := range words {
		for tag, sw := range stopwords {
			for _, s := range sw {
				if w == s {
					counts[tag]++
				}
			}
		}
	}

	var best language.Tag
	bestCount := 0
	for tag, c := range counts {
		if c > bestCount {
			best = tag
			bestCount = c
		}
	}
	if bestCount == 0 {
		return ""
	}
	return best.String()
}
