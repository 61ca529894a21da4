package goquery_test

import (
	"strings"
	"testing"

	"github.com/recipeclip/recipeclip/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprinter(t *testing.T) {
	t.Parallel()

	fp := goquery.NewFingerprinter()

	t.Run("stable across text and whitespace churn", func(t *testing.T) {
		t.Parallel()

		a := fp.Fingerprint(`<html><head><title>shrimp pasta</title></head>
			<body><div class="a"><p>one recipe</p></div></body></html>`)
		b := fp.Fingerprint(`<html><head><title>totally different video</title></head>
		<body><div class="a"><p>another caption entirely, much longer than before</p></div></body></html>`)

		assert.Equal(t, a, b)
	})

	t.Run("changes when the tag structure changes", func(t *testing.T) {
		t.Parallel()

		a := fp.Fingerprint(`<html><body><div><p>x</p></div></body></html>`)
		b := fp.Fingerprint(`<html><body><section><span>x</span></section></body></html>`)

		assert.NotEqual(t, a, b)
	})

	t.Run("distinguishes state blob markers", func(t *testing.T) {
		t.Parallel()

		plain := fp.Fingerprint(`<html><head><script>var x=1</script></head></html>`)
		state := fp.Fingerprint(`<html><head><script id="SIGI_STATE">{}</script></head></html>`)

		assert.NotEqual(t, plain, state)
	})

	t.Run("counts structured data blocks", func(t *testing.T) {
		t.Parallel()

		one := fp.Fingerprint(`<html><script type="application/ld+json">{}</script></html>`)
		two := fp.Fingerprint(`<html><script type="application/ld+json">{}</script><script type="application/ld+json">{}</script></html>`)

		assert.NotEqual(t, one, two)
	})

	t.Run("fixed width hex output", func(t *testing.T) {
		t.Parallel()

		got := fp.Fingerprint(`<html><body></body></html>`)

		require.Len(t, got, 16)
		assert.Regexp(t, `^[0-9a-f]{16}$`, got)
	})

	t.Run("tag cap bounds work on huge documents", func(t *testing.T) {
		t.Parallel()

		capped := goquery.NewFingerprinter(goquery.WithMaxTags(10))
		prefix := `<html><body>` + strings.Repeat("<div></div>", 20)
		a := capped.Fingerprint(prefix + `<article></article></body></html>`)
		b := capped.Fingerprint(prefix + `<aside></aside></body></html>`)

		assert.Equal(t, a, b)
	})
}
