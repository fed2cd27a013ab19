// Package lexicon holds the French vocabulary used to interpret drive-through
// utterances. A Lexicon is plain configuration: it is built once at startup,
// handed to the parser, and never modified afterwards.
package lexicon

// Alias maps a spoken phrase to a catalog SKU
type Alias struct {
	Phrase string
	SKU    string
}

// Synonym maps a spoken phrase to a canonical value
type Synonym struct {
	Phrase string
	Value  string
}

// NumberWord is a spelled-out quantity
type NumberWord struct {
	Word  string
	Value int
}

// Guidance holds the triggers and canned recommendations, in priority order:
// indecision, age, budget, light, hunger.
type Guidance struct {
	Indecision     []string
	IndecisionNote string

	// Age notes apply to ages below KidsMaxAge (exclusive) and up to ChildMaxAge (inclusive)
	KidsMaxAge  int
	KidsNote    string
	ChildMaxAge int
	ChildNote   string

	Budget     []string
	BudgetNote string

	Light     []string
	LightNote string

	Hunger     []string
	HungerNote string
}

// Upsell holds the suggestions offered at the end of a turn
type Upsell struct {
	Dessert        string
	Side           string
	Upsize         string
	Combo          string
	DefaultDessert string
}

// Lexicon is the complete vocabulary of the parser
type Lexicon struct {
	// Items is scanned in order; earlier aliases resolve first
	Items  []Alias
	Sizes  []Synonym
	Drinks []Synonym

	// DrinkSKUs maps canonical drink names to the SKU ordered when the drink is asked for alone
	DrinkSKUs     map[string]string
	DrinkKeywords []string

	NoOnions    []string
	NumberWords []NumberWord

	MenuWord     string
	ComboSuffix  string
	DefaultCombo string
	FriesKeyword string
	DefaultFries string
	UpsizeValue  string
	LargeFries   string
	NoOnionsNote string

	Guidance Guidance
	Upsell   Upsell
}

// Default returns the Quick drive-through vocabulary
func Default() *Lexicon {
	return &Lexicon{
		Items: []Alias{
			// burgers
			{"giant", "GIANT"},
			{"mega giant", "MEGA_GIANT"},
			{"méga giant", "MEGA_GIANT"},
			{"giant max", "GIANT_MAX"},
			{"long bacon", "LONG_BACON"},
			{"long chicken", "LONG_CHICKEN"},
			{"long fish", "LONG_FISH"},
			{"long spicy", "LONG_SPICY"},
			{"quick n toast", "QUICK_N_TOAST_BACON"},
			{"quick'n toast", "QUICK_N_TOAST_BACON"},
			{"supreme classiq", "SUPREME_CLASSIQ"},
			{"suprême classiq", "SUPREME_CLASSIQ"},
			{"supreme bacon", "SUPREME_BACON"},
			{"suprême bacon", "SUPREME_BACON"},
			{"junior giant", "JUNIOR_GIANT"},
			{"wrap giant veggie", "WRAP_GIANT_VEGGIE"},
			// sides, salads, finger food
			{"frites", "FRIES_M"},
			{"frites medium", "FRIES_M"},
			{"frites large", "FRIES_L"},
			{"salade poulet", "SALAD_CHICKEN"},
			{"petite salade", "PETITE_SALADE"},
			{"chicken wings", "CHICKEN_WINGS_5"},
			{"chicken dips", "CHICKEN_DIPS_7"},
			{"bâtonnets de fromage", "CHEESE_STICKS_4"},
			// desserts
			{"brownie", "BROWNIE"},
			{"sundae", "SUNDAE"},
			// drinks
			{"eau", "WATER"},
			{"coca", "COKE_M"},
			{"coca cola", "COKE_M"},
			{"fanta", "FANTA"},
			{"café", "COFFEE"},
			{"cafe", "COFFEE"},
			// combos
			{"giant menu", "GIANT_MENU"},
			{"long bacon menu", "LONG_BACON_MENU"},
			{"giant max menu", "GIANT_MAX_MENU"},
			{"méga giant menu", "MEGA_GIANT_MENU"},
			{"mega giant menu", "MEGA_GIANT_MENU"},
			{"long chicken menu", "LONG_CHICKEN_MENU"},
			{"long fish menu", "LONG_FISH_MENU"},
			{"long spicy menu", "LONG_SPICY_MENU"},
			{"menu kids", "KIDS_MENU"},
		},
		Sizes: []Synonym{
			{"xl", "XL"},
			{"x l", "XL"},
			{"l", "L"},
			{"grande", "L"},
			{"grand", "L"},
			{"m", "M"},
			{"moyen", "M"},
			{"moyenne", "M"},
			// "petit" fries default to medium
			{"petite", "M"},
			{"petit", "M"},
		},
		Drinks: []Synonym{
			{"coca zero", "Coca-Cola Sans Sucres"},
			{"coca zéro", "Coca-Cola Sans Sucres"},
			{"sans sucres", "Coca-Cola Sans Sucres"},
			{"sans sucre", "Coca-Cola Sans Sucres"},
			{"zéro", "Coca-Cola Sans Sucres"},
			{"zero", "Coca-Cola Sans Sucres"},
			{"eau", "Eau"},
			{"coca cola", "Coca-Cola"},
			{"coca", "Coca-Cola"},
			{"fanta", "Fanta"},
			{"sprite", "Sprite"},
		},
		DrinkSKUs: map[string]string{
			"Eau":       "WATER",
			"Coca-Cola": "COKE_M",
			"Fanta":     "FANTA",
		},
		DrinkKeywords: []string{"eau", "coca", "fanta", "sprite"},
		NoOnions:      []string{"sans oignon", "sans oignons"},
		NumberWords: []NumberWord{
			{"un", 1}, {"une", 1}, {"deux", 2}, {"trois", 3}, {"quatre", 4},
			{"cinq", 5}, {"six", 6}, {"sept", 7}, {"huit", 8}, {"neuf", 9}, {"dix", 10},
		},
		MenuWord:     "menu",
		ComboSuffix:  "_MENU",
		DefaultCombo: "GIANT_MENU",
		FriesKeyword: "frites",
		DefaultFries: "FRIES_M",
		UpsizeValue:  "XL",
		LargeFries:   "L",
		NoOnionsNote: "NO_ONIONS",
		Guidance: Guidance{
			Indecision: []string{"je ne sais pas", "je sais pas", "j'hésite", "je hesite", "aucune idée"},
			IndecisionNote: "Vous hésitez ? Nos tops ventes : *Giant Menu* et *Long Bacon Menu*. " +
				"Plutôt goût classique (Giant) ou bacon fumé (Long Bacon) ?",
			KidsMaxAge:  6,
			KidsNote:    "Pour moins de 6 ans : *Menu Kids* avec petite boisson. On part là-dessus ?",
			ChildMaxAge: 11,
			ChildNote:   "Pour 7–11 ans : *Menu Kids* ou sandwich simple + petite boisson. Je propose *Menu Kids* ?",
			Budget:      []string{"petit budget", "budget", "pas cher", "moins cher"},
			BudgetNote:  "Pour un petit budget : *Menu Value* ou *Junior Giant*. Ça vous conviendrait ?",
			Light:       []string{"léger", "leger", "light", "salade"},
			LightNote:   "En plus léger : *Salade Poulet* avec de l’eau. Ça vous tente ?",
			Hunger:      []string{"très faim", "tres faim", "j'ai faim", "j ai faim"},
			HungerNote:  "Très faim ? *Menu XL* (boisson + frites grandes). Je vous le propose ?",
		},
		Upsell: Upsell{
			Dessert:        "Un dessert pour compléter ? *Sundae* ou *Brownie* ?",
			Side:           "Souhaitez-vous ajouter un accompagnement ? *Frites L* ou *Chicken Dips* ?",
			Upsize:         "Vous préférez **XL** pour la boisson et les frites ?",
			Combo:          "Souhaitez-vous le *MENU* avec boisson et frites pour compléter ?",
			DefaultDessert: "Je vous suggère un *Brownie* pour finir en douceur. Ça vous ferait plaisir ?",
		},
	}
}

// AliasesBySKU groups item aliases by the SKU they resolve to, preserving table order
func (l *Lexicon) AliasesBySKU() map[string][]string {
	out := make(map[string][]string)
	for _, a := range l.Items {
		out[a.SKU] = append(out[a.SKU], a.Phrase)
	}
	return out
}
