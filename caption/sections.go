// Package caption splits free-text captions and comment annotations into
// structured ingredient and step lists. Social captions carry recipes in a
// handful of shapes: headed sections, bullet runs, numbered run-on
// sentences, and measurement-prefixed lines; this package normalizes all of
// them into flat ordered lists.
package caption

import (
	"regexp"
	"strings"
)

var (
	ingredientsHeaderRe = regexp.MustCompile(`(?i)\bingredients?\s*[:\n]`)
	stepsHeaderRe       = regexp.MustCompile(`(?i)\b(?:steps?|directions?|method|instructions?)\s*[:\n]`)

	bulletPrefixRe   = regexp.MustCompile(`^[-•*–▪◦]\s*`)
	numberedPrefixRe = regexp.MustCompile(`^\d+\s*[.)]\s*`)
	numberedSplitRe  = regexp.MustCompile(`\d+\s*[.)]\s+`)

	// measurementRe recognizes quantity-led lines such as "2 cups flour"
	// or "½ tsp salt". A unit word is required so "10 minute dinner idea"
	// does not classify as an ingredient.
	measurementRe = regexp.MustCompile(`(?i)^[\d½⅓⅔¼¾⅛⅜⅝⅞][^\n]{0,40}?\b(?:cups?|tsp|teaspoons?|tbsp|tablespoons?|oz|ounces?|lbs?|pounds?|g|grams?|kg|ml|l|cloves?|eggs?|sticks?|cans?|slices?|pinch|dash)\b`)
)

const minItemLen = 3

// Sections splits a caption plus its annotation list into ingredient and
// step lists. It is pure and deterministic; unusable input yields empty
// lists, never an error.
func Sections(text string, annotations []string) (ingredients, steps []string) {
	seen := make(map[string]bool)

	add := func(dst *[]string, item string) {
		item = strings.TrimSpace(item)
		item = bulletPrefixRe.ReplaceAllString(item, "")
		item = numberedPrefixRe.ReplaceAllString(item, "")
		item = strings.Trim(item, " .…")
		if len([]rune(item)) < minItemLen {
			return
		}
		key := strings.ToLower(item)
		if seen[key] {
			return
		}
		seen[key] = true
		*dst = append(*dst, item)
	}

	parts := make([]string, 0, len(annotations)+1)
	parts = append(parts, text)
	parts = append(parts, annotations...)

	ingredients = []string{}
	steps = []string{}

	for _, part := range parts {
		ing, st := splitPart(part)
		for _, item := range ing {
			add(&ingredients, item)
		}
		for _, item := range st {
			add(&steps, item)
		}
	}

	return ingredients, steps
}

// splitPart carves one text block into raw ingredient and step items.
func splitPart(text string) (ingredients, steps []string) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	ingIdx := ingredientsHeaderRe.FindStringIndex(text)
	stepIdx := stepsHeaderRe.FindStringIndex(text)

	// Headed form: carve the text into segments between the markers.
	if ingIdx != nil {
		ingEnd := len(text)
		if stepIdx != nil && stepIdx[0] > ingIdx[0] {
			ingEnd = stepIdx[0]
		}
		ingredients = splitItems(text[ingIdx[1]:ingEnd], false)

		if stepIdx != nil {
			if stepIdx[0] > ingIdx[0] {
				steps = splitItems(text[stepIdx[1]:], true)
			} else {
				steps = splitItems(text[stepIdx[1]:ingIdx[0]], true)
			}
		}
		return ingredients, steps
	}
	if stepIdx != nil {
		return nil, splitItems(text[stepIdx[1]:], true)
	}

	// Headless form: classify line by line.
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case numberedPrefixRe.MatchString(line):
			steps = append(steps, line)
		case bulletPrefixRe.MatchString(line) && measurementRe.MatchString(bulletPrefixRe.ReplaceAllString(line, "")):
			ingredients = append(ingredients, line)
		case measurementRe.MatchString(line):
			ingredients = append(ingredients, line)
		}
	}
	return ingredients, steps
}

// splitItems breaks a segment into individual items. Multi-line segments
// split on newlines; single-line ingredient runs split on commas; single-line
// step runs split on numbered markers or sentences.
func splitItems(segment string, asSteps bool) []string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return nil
	}

	if strings.Contains(segment, "\n") {
		var items []string
		for _, line := range strings.Split(segment, "\n") {
			if strings.TrimSpace(line) != "" {
				items = append(items, line)
			}
		}
		return items
	}

	if asSteps {
		if numberedSplitRe.MatchString(segment) {
			return numberedSplitRe.Split(segment, -1)
		}
		return strings.Split(segment, ". ")
	}

	return strings.FieldsFunc(segment, func(r rune) bool {
		return r == ',' || r == ';'
	})
}
