// Package score rates arbitrary text for how recipe-like it is using a
// weighted additive heuristic over high-signal tokens. The scorer is a pure
// function so carriers can be compared on a common scale and unit tests can
// assert exact ranges against literal strings.
package score

import (
	"regexp"
	"strings"
)

// Weights holds the tunable term weights of the scorer. The defaults were
// calibrated against captured social captions; treat them as starting points,
// not final values.
type Weights struct {
	IngredientsMarker float64 // text mentions an ingredients marker word
	StepsMarker       float64 // text mentions steps/directions/method/instructions
	UnitToken         float64 // per matched measurement-unit token
	FractionOrDigit   float64 // contains a fraction glyph or digit
	BulletLine        float64 // a line starts with a bullet marker
	NumberedLine      float64 // a line starts with "1." / "1)"
	EmojiMarker       float64 // recipe-adjacent emoji (cart, clock, arrow, note)
	HashtagPenalty    float64 // hashtag density above HashtagDensityMax
	PromoPenalty      float64 // promotional/off-topic phrases present
	LengthDivisor     float64 // length bonus divisor
	LengthCap         int     // length bonus saturates here

	// HashtagDensityMax is the hashtag count / text length ratio above
	// which the hashtag penalty applies.
	HashtagDensityMax float64
}

// DefaultWeights returns the calibrated default weights.
func DefaultWeights() Weights {
	return Weights{
		IngredientsMarker: 500,
		StepsMarker:       360,
		UnitToken:         70,
		FractionOrDigit:   80,
		BulletLine:        80,
		NumberedLine:      90,
		EmojiMarker:       40,
		HashtagPenalty:    -60,
		PromoPenalty:      -120,
		LengthDivisor:     8,
		LengthCap:         1600,
		HashtagDensityMax: 0.02,
	}
}

var (
	stepsMarkerRe = regexp.MustCompile(`(?i)\b(steps?|directions?|method|instructions?)\b`)
	unitTokenRe   = regexp.MustCompile(`(?i)\b(cups?|tsp|teaspoons?|tbsp|tablespoons?|oz|ounces?|lbs?|pounds?|g|grams?|kg|ml|l|liters?|litres?|cloves?|eggs?|sticks?|pinch|dash|cans?|slices?)\b`)
	digitRe       = regexp.MustCompile(`[0-9]`)
	numberedRe    = regexp.MustCompile(`^\d+[.)]`)
)

const (
	fractionGlyphs = "½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞"
	bulletMarkers  = "-•*–▪◦"
)

// emojiMarkers are recipe-adjacent emoji often used to head ingredient or
// step sections in social captions.
var emojiMarkers = []string{"🛒", "🕐", "🕑", "⏰", "⏲", "➡", "→", "📝", "🧾"}

// promoPhrases mark promotional captions that otherwise score well on
// length alone.
var promoPhrases = []string{"tour", "tickets", "merch", "follow", "subscribe", "link in bio"}

// Score rates text with the given weights. It is total and deterministic:
// any input yields a finite score, and identical input yields an identical
// score. Stronger recipe signals never decrease it.
func (w Weights) Score(text string) float64 {
	if text == "" {
		return 0
	}

	var s float64
	lower := strings.ToLower(text)

	if strings.Contains(lower, "ingredient") {
		s += w.IngredientsMarker
	}
	if stepsMarkerRe.MatchString(text) {
		s += w.StepsMarker
	}

	s += w.UnitToken * float64(len(unitTokenRe.FindAllStringIndex(text, -1)))

	if digitRe.MatchString(text) || strings.ContainsAny(text, fractionGlyphs) {
		s += w.FractionOrDigit
	}

	var bulleted, numbered bool
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !bulleted && strings.ContainsRune(bulletMarkers, firstRune(line)) {
			bulleted = true
		}
		if !numbered && numberedRe.MatchString(line) {
			numbered = true
		}
	}
	if bulleted {
		s += w.BulletLine
	}
	if numbered {
		s += w.NumberedLine
	}

	for _, marker := range emojiMarkers {
		if strings.Contains(text, marker) {
			s += w.EmojiMarker
			break
		}
	}

	if hashtags := strings.Count(text, "#"); hashtags > 0 {
		if float64(hashtags)/float64(len(text)) > w.HashtagDensityMax {
			s += w.HashtagPenalty
		}
	}

	for _, phrase := range promoPhrases {
		if strings.Contains(lower, phrase) {
			s += w.PromoPenalty
			break
		}
	}

	// Bounded length bonus: rewards substance without letting very long
	// spam dominate.
	length := len(text)
	if length > w.LengthCap {
		length = w.LengthCap
	}
	s += float64(length) / w.LengthDivisor

	return s
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// Score rates text with the default weights.
func Score(text string) float64 {
	return DefaultWeights().Score(text)
}

// FilterByScore drops any item scoring below threshold, preserving order.
// Used to prune annotation lists before they are joined into a caption.
func FilterByScore(items []string, threshold float64) []string {
	filtered := make([]string, 0, len(items))
	for _, item := range items {
		if Score(item) >= threshold {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
