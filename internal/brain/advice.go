package brain

import (
	"strconv"
	"strings"

	"github.com/smartdrive/voicebot-backend/internal/models"
)

// recommend returns the guidance note of the first matching trigger, or ""
func (p *Parser) recommend(u string) string {
	g := p.lex.Guidance

	if containsAny(u, g.Indecision) {
		return g.IndecisionNote
	}

	if m := p.ageRe.FindStringSubmatch(u); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil {
			switch {
			case age < g.KidsMaxAge:
				return g.KidsNote
			case age <= g.ChildMaxAge:
				return g.ChildNote
			}
		}
	}

	if containsAny(u, g.Budget) {
		return g.BudgetNote
	}
	if containsAny(u, g.Light) {
		return g.LightNote
	}
	if containsAny(u, g.Hunger) {
		return g.HungerNote
	}

	return ""
}

// upsell picks the single suggestion for the draft. Suggestions never stack.
func (p *Parser) upsell(draft models.OrderDraft) string {
	var hasCombo, hasBurger, hasDessert, hasSide bool
	for _, l := range draft.Lines {
		switch p.index.CategoryOf(l.SKU) {
		case models.CategoryMenus:
			hasCombo = true
		case models.CategoryBurgers:
			hasBurger = true
		case models.CategoryDesserts:
			hasDessert = true
		case models.CategoryFries, models.CategoryFinger:
			hasSide = true
		}
	}

	up := p.lex.Upsell
	switch {
	case hasCombo:
		if !hasDessert {
			return up.Dessert
		}
		if !hasSide {
			return up.Side
		}
		for _, l := range draft.Lines {
			if p.index.CategoryOf(l.SKU) == models.CategoryMenus && l.Mods["size"] != p.lex.UpsizeValue {
				return up.Upsize
			}
		}
		return ""
	case hasBurger:
		return up.Combo
	default:
		return up.DefaultDessert
	}
}

func containsAny(s string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}
