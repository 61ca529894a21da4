// Package title derives a short human display title from arbitrary caption
// text using ranked pattern strategies. Highly specific recipe-shaped
// patterns are trusted over generic line heuristics: a wrong specific title
// is worse than falling through to a weaker but safer generic one.
package title

import (
	"regexp"
	"strings"
)

// Placeholder is returned when no tier produces a valid title.
const Placeholder = "Recipe"

// Title length bounds, in runes.
const (
	minLen = 3
	maxLen = 72
)

// foodWords anchors the descriptor pattern and the recipe-word line check.
// Common dish and ingredient nouns only; brand names don't belong here.
var foodWords = []string{
	"pasta", "bread", "sauce", "chicken", "beef", "pork", "fish", "shrimp",
	"salmon", "tofu", "soup", "salad", "sandwich", "cake", "cookies",
	"cookie", "pie", "tacos", "taco", "pizza", "rice", "noodles", "curry",
	"stew", "brownies", "muffins", "pancakes", "waffles", "dumplings",
	"burger", "lasagna", "risotto", "ramen", "smoothie", "casserole",
	"chili", "wings", "meatballs", "enchiladas", "quesadilla", "omelette",
	"frittata", "toast", "cheesecake", "pudding", "fudge", "granola",
	"oatmeal", "biscuits", "rolls", "dip", "butter",
}

// weakWords are too generic to stand alone as a title.
var weakWords = map[string]bool{
	"recipe": true, "recipes": true, "video": true, "tiktok": true,
	"instagram": true, "food": true, "cooking": true, "foodtok": true,
	"viral": true, "fyp": true, "delicious": true, "yummy": true,
}

var (
	foodAlt = strings.Join(foodWords, "|")

	likesCommentsRe  = regexp.MustCompile(`(?i)^\s*[\d.,km]+ likes?,\s*[\d.,km]+ comments?\s*[-–—]\s*[\w.@]+(?:\s+on\s+[^:\n]+)?:\s*`)
	platformSuffixRe = regexp.MustCompile(`(?i)\s*[|·]\s*(tiktok|instagram|facebook|youtube|pinterest)\s*$`)

	recipeForRe = regexp.MustCompile(`(?i)\brecipe for\s+([^.,!?\n#@]{3,60})`)
	xRecipeRe   = regexp.MustCompile(`(?i)([a-z][a-z'’&,\- ]{2,60}?)\s+recipe\b`)
	howToMakeRe = regexp.MustCompile(`(?i)\bhow to make\s+([^.,!?\n#@]{3,60})`)
	descriptorRe = regexp.MustCompile(
		`(?i)\b((?:this|these|my|the best|delicious|homemade|easy|perfect|simple|quick)\s+(?:[a-z'’\-]+\s+){0,3}(?:` + foodAlt + `))\b`)

	quotedRe     = regexp.MustCompile(`["“”]([^"“”\n]{3,80})["“”]`)
	titleCaseRe  = regexp.MustCompile(`\b((?:[A-Z][a-z'’\-]+)(?:\s+[A-Z][a-z'’\-]+){1,4})\b`)
	recipeWordRe = regexp.MustCompile(`(?i)\b(recipe|` + foodAlt + `)\b`)

	bareHandleRe  = regexp.MustCompile(`^[@#][\w.]+$`)
	allDigitsRe   = regexp.MustCompile(`^[\d\s.,/%]+$`)
	letterRe      = regexp.MustCompile(`[a-zA-Z]`)
	leadingJunkRe = regexp.MustCompile(`^(?:[@#][\w.]+\s*)+`)
	introVerbRe   = regexp.MustCompile(`(?i)^(?:made|making|tried|trying|cooking|baking|how to make)\s+`)
)

// Extract derives a display title from text. It always returns a non-empty
// string of at most 72 characters, falling back to Placeholder. Tiers run in
// strict priority order; the first tier with a valid candidate wins, and
// within a tier the longest valid candidate is preferred.
func Extract(text string) string {
	s := StripBoilerplate(text)

	tiers := []func(string) []string{
		patternCandidates,
		quotedCandidates,
		recipeLineCandidates,
		titleCaseCandidates,
		genericLineCandidates,
	}

	for _, tier := range tiers {
		var best string
		for _, raw := range tier(s) {
			c := Clean(raw)
			if !valid(c) {
				continue
			}
			if len([]rune(c)) > len([]rune(best)) {
				best = c
			}
		}
		if best != "" {
			return truncate(best)
		}
	}

	return Placeholder
}

// StripBoilerplate removes platform chrome: "N likes, M comments — handle:"
// prefixes and trailing "| Platform" suffixes. Idempotent: stripping
// already-stripped text is a no-op.
func StripBoilerplate(text string) string {
	s := likesCommentsRe.ReplaceAllString(text, "")
	s = platformSuffixRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// CleanSiteSuffix strips a trailing " | Site Name" or " - Site Name" suffix
// from a publisher page title. The suffix is only removed when it is shorter
// than the remaining title, so "Sweet - and Sour Pork" survives.
func CleanSiteSuffix(t string) string {
	for _, sep := range []string{" | ", " - ", " – ", " — "} {
		if idx := strings.LastIndex(t, sep); idx > 0 {
			head, tail := t[:idx], t[idx+len(sep):]
			if len(tail) < len(head) {
				t = head
			}
		}
	}
	return strings.TrimSpace(t)
}

// Clean normalizes a raw candidate: strips leading handles and hashtags,
// leading intro verbs, surrounding quotes, trailing hashtags and
// punctuation, and collapses whitespace.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = leadingJunkRe.ReplaceAllString(s, "")
	s = introVerbRe.ReplaceAllString(s, "")
	s = strings.Trim(s, `"'“”‘’`)

	// Drop trailing hashtag runs.
	fields := strings.Fields(s)
	for len(fields) > 0 && strings.HasPrefix(fields[len(fields)-1], "#") {
		fields = fields[:len(fields)-1]
	}
	s = strings.Join(fields, " ")

	s = strings.TrimRight(s, " .,!;:-–—*")
	return strings.TrimSpace(s)
}

// valid reports whether a cleaned candidate can serve as a title.
func valid(s string) bool {
	n := len([]rune(s))
	if n < minLen || n > maxLen {
		return false
	}
	if bareHandleRe.MatchString(s) || allDigitsRe.MatchString(s) {
		return false
	}
	if !letterRe.MatchString(s) {
		return false
	}
	lower := strings.ToLower(s)
	if weakWords[lower] {
		return false
	}
	if strings.HasPrefix(lower, "ingredient") {
		return false
	}
	return true
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	cut := string(runes[:maxLen])
	if idx := strings.LastIndex(cut, " "); idx > minLen {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " .,!;:-–—")
}

// patternCandidates matches recipe-shaped phrases, the most trusted tier.
func patternCandidates(s string) []string {
	var out []string
	for _, re := range []*regexp.Regexp{recipeForRe, xRecipeRe, howToMakeRe, descriptorRe} {
		for _, m := range re.FindAllStringSubmatch(s, -1) {
			out = append(out, m[1])
		}
	}
	return out
}

func quotedCandidates(s string) []string {
	var out []string
	for _, m := range quotedRe.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	return out
}

// recipeLineCandidates returns the first line that is both a reasonable
// title and mentions a recipe word.
func recipeLineCandidates(s string) []string {
	for _, line := range strings.Split(s, "\n") {
		c := Clean(line)
		if valid(c) && recipeWordRe.MatchString(c) {
			return []string{line}
		}
	}
	return nil
}

func titleCaseCandidates(s string) []string {
	return titleCaseRe.FindAllString(s, -1)
}

// genericLineCandidates returns the first line passing only the generic
// validity check, with no recipe-word requirement.
func genericLineCandidates(s string) []string {
	for _, line := range strings.Split(s, "\n") {
		if valid(Clean(line)) {
			return []string{line}
		}
	}
	return nil
}
