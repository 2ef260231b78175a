// Package images picks and downloads the stock photo attached to generated posts.
package images

import (
	"math/rand/v2"
	"strings"
)

// Catalog is the fixed set of stock categories, also the random fallback pool.
var Catalog = []string{"eyebrows", "lips", "eyes", "makeup", "beauty", "woman", "cosmetics", "salon"}

type rule struct {
	keywords []string
	category string
}

// Rules are checked in order; the first rule with a keyword contained in the
// lower-cased prompt wins.
var rules = []rule{
	{keywords: []string{"microblading", "nanoblading", "brow", "eyebrow"}, category: "eyebrows"},
	{keywords: []string{"lip", "blush"}, category: "lips"},
	{keywords: []string{"lash", "liner", "eye"}, category: "eyes"},
	{keywords: []string{"makeup", "pmu", "permanent"}, category: "makeup"},
	{keywords: []string{"skin", "glow", "beauty"}, category: "beauty"},
	{keywords: []string{"salon", "studio", "spa"}, category: "salon"},
}

// Category maps a prompt to a stock category. Prompts without a keyword get a
// uniformly random category from Catalog drawn from r.
func Category(prompt string, r *rand.Rand) string {
	lower := strings.ToLower(prompt)
	for _, rl := range rules {
		for _, kw := range rl.keywords {
			if strings.Contains(lower, kw) {
				return rl.category
			}
		}
	}
	return Catalog[r.IntN(len(Catalog))]
}
