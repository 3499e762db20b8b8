// Package catalog holds the static service list offered by the studio and
// the mutable pricing settings. It carries data only; pricing math lives in
// the pricing package.
package catalog

// Pricing modes. Descriptive only: the arithmetic is the same for all three.
const (
	ModeForfait  = "forfait"
	ModeTemps    = "temps"
	ModeUnitaire = "unitaire"
)

// Service categories.
const (
	CategoryPreProd     = "Pré-prod"
	CategoryProd        = "Prod"
	CategoryPostProd    = "Post-prod"
	CategorySupplements = "Suppléments"
)

// Entry is one service of the fixed catalogue.
type Entry struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Mode        string  `json:"mode"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

var entries = []Entry{
	{Title: "Storyboard", Description: "Découpage, narration, enchaînements", Category: CategoryPreProd, Mode: ModeForfait, Quantity: 1, UnitPrice: 450},
	{Title: "Direction artistique / moodboard", Description: "Palette, références visuelles, intentions", Category: CategoryPreProd, Mode: ModeForfait, Quantity: 1, UnitPrice: 380},
	{Title: "Illustration / character design", Description: "Assets graphiques, personnages, décors", Category: CategoryProd, Mode: ModeForfait, Quantity: 1, UnitPrice: 700},
	{Title: "Animation 2D", Description: "Animation principale en 2D", Category: CategoryProd, Mode: ModeTemps, Quantity: 2, UnitPrice: 520},
	{Title: "Animation 3D", Description: "Mise en mouvement 3D, rendu", Category: CategoryProd, Mode: ModeTemps, Quantity: 1, UnitPrice: 900},
	{Title: "Voix off", Description: "Casting, enregistrement et traitement", Category: CategoryPostProd, Mode: ModeUnitaire, Quantity: 1, UnitPrice: 350},
	{Title: "Sound design / musique", Description: "Mixage, ambiance sonore, droits musicaux", Category: CategoryPostProd, Mode: ModeForfait, Quantity: 1, UnitPrice: 280},
	{Title: "Sous-titres", Description: "Traduction, intégration multi-langue", Category: CategorySupplements, Mode: ModeUnitaire, Quantity: 1, UnitPrice: 90},
	{Title: "Adaptations formats", Description: "Déclinaisons 9:16, 1:1, 4:5...", Category: CategorySupplements, Mode: ModeUnitaire, Quantity: 2, UnitPrice: 110},
	{Title: "Livrables supplémentaires", Description: "Exports spécifiques, fichiers sources", Category: CategorySupplements, Mode: ModeUnitaire, Quantity: 1, UnitPrice: 150},
}

// Entries returns a copy of the catalogue.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup finds a catalogue entry by exact title.
func Lookup(title string) (Entry, bool) {
	for _, e := range entries {
		if e.Title == title {
			return e, true
		}
	}
	return Entry{}, false
}
