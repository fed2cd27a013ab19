package brain

import (
	"regexp"
	"strings"

	"github.com/smartdrive/voicebot-backend/internal/models"
)

// Letters, digits and underscore count as word characters, accented ones included.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:[^\p{L}\p{N}_]|$)`
)

// sizeEnd also rejects an apostrophe, so the article in "l'eau" is not size L
const sizeEnd = `(?:[^\p{L}\p{N}_'’]|$)`

func wordRegexp(phrase string) *regexp.Regexp {
	return regexp.MustCompile(wordStart + regexp.QuoteMeta(phrase) + wordEnd)
}

func sizeRegexp(phrase string) *regexp.Regexp {
	return regexp.MustCompile(wordStart + regexp.QuoteMeta(phrase) + sizeEnd)
}

// quantityPatterns compiles, for a quoted term, the digit-before, multiplier and number-word patterns
func (p *Parser) quantityPatterns(term string) []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(wordStart + `(\d+)\s+` + term + wordEnd),
		regexp.MustCompile(wordStart + term + `\s*(?:x|\*)\s*(\d+)` + wordEnd),
		p.numberWordPattern(term),
	}
}

func (p *Parser) numberWordPattern(term string) *regexp.Regexp {
	words := make([]string, 0, len(p.lex.NumberWords))
	for _, w := range p.lex.NumberWords {
		words = append(words, regexp.QuoteMeta(w.Word))
	}
	return regexp.MustCompile(wordStart + `(` + strings.Join(words, "|") + `)\s+` + term + wordEnd)
}

// guessQty infers the ordered quantity of r, defaulting to 1.
// Aliases of the SKU are tried first, then the aliases that were promoted into it.
func (p *Parser) guessQty(u string, r resolved) int {
	aliases := append([]string(nil), p.aliases[r.sku]...)
	for _, src := range r.sources {
		if !contains(aliases, src) {
			aliases = append(aliases, src)
		}
	}

	for _, a := range aliases {
		if n, ok := p.matchQty(u, p.qtyCache[a]); ok {
			return n
		}
	}

	if p.index.CategoryOf(r.sku) == models.CategoryMenus {
		if n, ok := p.matchQty(u, p.menusQty); ok {
			return n
		}
	}

	return 1
}

func (p *Parser) matchQty(u string, patterns []*regexp.Regexp) (int, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(u)
		if m == nil {
			continue
		}
		if n, ok := p.atoiQty(m[1]); ok {
			return n, true
		}
		if n, ok := p.numberWord(m[1]); ok {
			return n, true
		}
	}
	return 0, false
}

func (p *Parser) numberWord(word string) (int, bool) {
	for _, w := range p.lex.NumberWords {
		if w.Word == word {
			return max(1, w.Value), true
		}
	}
	return 0, false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
