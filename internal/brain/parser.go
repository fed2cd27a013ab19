// Package brain turns a transcribed French drive-through utterance into an
// order draft. Interpretation is a deterministic pipeline of lexicon lookups
// and regular expressions over a menu index. It never fails: an utterance it
// does not understand yields a draft without lines.
package brain

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/smartdrive/voicebot-backend/internal/lexicon"
	"github.com/smartdrive/voicebot-backend/internal/models"
)

var ErrNoMenuIndex = errors.New("parser has no menu index")

// MenuIndex is the catalog view the parser resolves SKUs against
type MenuIndex interface {
	Item(sku string) (models.MenuItem, bool)
	ItemByName(name string) (models.MenuItem, bool)
	Has(sku string) bool
	CategoryOf(sku string) string
}

// Parser interprets utterances. It is immutable and safe for concurrent use.
type Parser struct {
	index MenuIndex
	lex   *lexicon.Lexicon

	sizes    []compiledSynonym
	drinks   []compiledSynonym
	aliases  map[string][]string
	qtyCache map[string][]*regexp.Regexp
	menusQty []*regexp.Regexp
	ageRe    *regexp.Regexp
}

type compiledSynonym struct {
	re     *regexp.Regexp
	phrase string
	value  string
}

// New creates a parser over index using the vocabulary in lex
func New(index MenuIndex, lex *lexicon.Lexicon) *Parser {
	if lex == nil {
		lex = lexicon.Default()
	}

	p := &Parser{
		index:    index,
		lex:      lex,
		aliases:  lex.AliasesBySKU(),
		qtyCache: make(map[string][]*regexp.Regexp),
		ageRe:    regexp.MustCompile(`(\d{1,2})\s*(?:ans|an)`),
	}

	for _, s := range lex.Sizes {
		p.sizes = append(p.sizes, compiledSynonym{re: sizeRegexp(s.Phrase), phrase: s.Phrase, value: s.Value})
	}
	for _, d := range lex.Drinks {
		p.drinks = append(p.drinks, compiledSynonym{re: wordRegexp(d.Phrase), phrase: d.Phrase, value: d.Value})
	}
	for _, a := range lex.Items {
		if _, ok := p.qtyCache[a.Phrase]; !ok {
			p.qtyCache[a.Phrase] = p.quantityPatterns(regexp.QuoteMeta(a.Phrase))
		}
	}
	menus := regexp.QuoteMeta(lex.MenuWord) + `s?`
	p.menusQty = []*regexp.Regexp{
		regexp.MustCompile(wordStart + `(\d+)\s+` + menus + wordEnd),
		p.numberWordPattern(menus),
	}

	return p
}

// resolved is a SKU found in the utterance along with the aliases that produced it
type resolved struct {
	sku     string
	sources []string
}

// Parse builds an order draft from utterance. The same utterance always yields the same draft.
func (p *Parser) Parse(utterance string) models.OrderDraft {
	draft := models.NewOrderDraft()
	if p == nil || p.index == nil {
		return draft
	}

	u := strings.ToLower(utterance)

	preferMenu := strings.Contains(u, p.lex.MenuWord)
	size := p.detectSize(u)
	drink := p.detectDrink(u)
	noOnions := p.detectNoOnions(u)
	found := p.detectItems(u, preferMenu)

	draft.AddNote(p.recommend(u))

	drinkAbsorbed := false
	if drink != "" {
		for _, r := range found {
			if p.comboAccepts(r.sku, "drink", drink) {
				drinkAbsorbed = true
				break
			}
		}
	}

	for _, r := range found {
		cat := p.index.CategoryOf(r.sku)
		// the drink was ordered as part of a combo, not on its own
		if drinkAbsorbed && cat == models.CategoryColdDrinks && p.spokenAs(u, drink, r) {
			continue
		}

		line, err := models.NewOrderLine(r.sku, p.guessQty(u, r))
		if err != nil {
			continue
		}

		switch cat {
		case models.CategoryMenus:
			item, _ := p.index.Item(r.sku)
			if size != "" {
				if spec, ok := item.Option("size"); ok {
					if spec.Allows(size) {
						line.Mods["size"] = size
					}
					if size == p.lex.UpsizeValue {
						if fries, ok := item.Option("fries"); ok && fries.Allows(p.lex.LargeFries) {
							line.Mods["fries"] = p.lex.LargeFries
						}
					}
				}
			}
			if drink != "" {
				if spec, ok := item.Option("drink"); ok && spec.Allows(drink) {
					line.Mods["drink"] = drink
				}
			}
			if noOnions {
				// the sandwich inside the combo is not known yet
				line.Mods["onions"] = "false"
				draft.AddNote(fmt.Sprintf("%s:%s", p.lex.NoOnionsNote, r.sku))
			}
		case models.CategoryBurgers:
			if noOnions {
				line.Mods["onions"] = "false"
			}
		}

		draft.Lines = append(draft.Lines, line)
	}

	p.appendFallbacks(u, drink, drinkAbsorbed, &draft)

	draft.AddNote(p.upsell(draft))

	return draft
}

// Validate reports lines whose SKU is not in the catalog.
// A non-nil error means the check itself could not run.
func (p *Parser) Validate(draft models.OrderDraft) ([]string, error) {
	if p == nil || p.index == nil {
		return nil, ErrNoMenuIndex
	}

	var errs []string
	for _, l := range draft.Lines {
		if !p.index.Has(l.SKU) {
			errs = append(errs, "SKU inconnu: "+l.SKU)
		}
	}
	return errs, nil
}

func (p *Parser) detectSize(u string) string {
	for _, s := range p.sizes {
		if s.re.MatchString(u) {
			return s.value
		}
	}
	return ""
}

func (p *Parser) detectDrink(u string) string {
	for _, d := range p.drinks {
		if d.re.MatchString(u) {
			return d.value
		}
	}
	return ""
}

func (p *Parser) detectNoOnions(u string) bool {
	for _, phrase := range p.lex.NoOnions {
		if strings.Contains(u, phrase) {
			return true
		}
	}
	return false
}

func (p *Parser) detectItems(u string, preferMenu bool) []resolved {
	var found []resolved
	pos := make(map[string]int)

	add := func(sku, alias string) {
		if i, ok := pos[sku]; ok {
			found[i].sources = append(found[i].sources, alias)
			return
		}
		pos[sku] = len(found)
		found = append(found, resolved{sku: sku, sources: []string{alias}})
	}

	for _, a := range p.lex.Items {
		if !strings.Contains(u, a.Phrase) {
			continue
		}
		sku := a.SKU
		if preferMenu && !strings.HasSuffix(sku, p.lex.ComboSuffix) {
			sku = p.promote(sku)
		}
		add(sku, a.Phrase)
	}

	if len(found) == 0 && preferMenu && p.index.Has(p.lex.DefaultCombo) {
		found = append(found, resolved{sku: p.lex.DefaultCombo})
	}

	return found
}

// promote returns the combo version of a standalone SKU when the catalog has one
func (p *Parser) promote(sku string) string {
	if item, ok := p.index.Item(sku); ok {
		if combo, ok := p.index.ItemByName(item.Name + " " + p.lex.MenuWord); ok {
			return combo.SKU
		}
	}
	if p.index.Has(sku + p.lex.ComboSuffix) {
		return sku + p.lex.ComboSuffix
	}
	return sku
}

// spokenAs reports whether every alias that produced r is part of a phrase,
// heard in u, naming drink
func (p *Parser) spokenAs(u, drink string, r resolved) bool {
	if len(r.sources) == 0 {
		return false
	}
	for _, src := range r.sources {
		covered := false
		for _, d := range p.drinks {
			if d.value == drink && strings.Contains(d.phrase, src) && d.re.MatchString(u) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

func (p *Parser) comboAccepts(sku, option, value string) bool {
	if p.index.CategoryOf(sku) != models.CategoryMenus {
		return false
	}
	item, _ := p.index.Item(sku)
	spec, ok := item.Option(option)
	return ok && spec.Allows(value)
}

func (p *Parser) appendFallbacks(u, drink string, drinkAbsorbed bool, draft *models.OrderDraft) {
	if strings.Contains(u, p.lex.FriesKeyword) && !p.hasCategory(*draft, models.CategoryFries) {
		p.appendLine(draft, p.lex.DefaultFries)
	}

	if drinkAbsorbed || p.hasCategory(*draft, models.CategoryColdDrinks) {
		return
	}
	for _, kw := range p.lex.DrinkKeywords {
		if !strings.Contains(u, kw) {
			continue
		}
		if sku, ok := p.lex.DrinkSKUs[drink]; ok {
			p.appendLine(draft, sku)
		}
		return
	}
}

// appendLine adds a single unit of sku; malformed SKUs from the lexicon are dropped
func (p *Parser) appendLine(draft *models.OrderDraft, sku string) {
	if line, err := models.NewOrderLine(sku, 1); err == nil {
		draft.Lines = append(draft.Lines, line)
	}
}

func (p *Parser) hasCategory(draft models.OrderDraft, category string) bool {
	for _, l := range draft.Lines {
		if p.index.CategoryOf(l.SKU) == category {
			return true
		}
	}
	return false
}

// atoiQty parses a digit run; numbers too large for an int saturate at math.MaxInt
func (p *Parser) atoiQty(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return max(1, n), true
}
