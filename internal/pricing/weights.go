package pricing

import "strings"

// Complexity is the production complexity tier of a video.
type Complexity int

const (
	ComplexitySimple Complexity = iota
	ComplexityStandard
	ComplexityAvancee
	ComplexityPremium
)

// ParseComplexity maps a free-form label to a tier. Matching is
// case-insensitive; unknown labels fall back to the simple tier.
func ParseComplexity(label string) Complexity {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "standard":
		return ComplexityStandard
	case "avancee", "avancée":
		return ComplexityAvancee
	case "premium":
		return ComplexityPremium
	default:
		return ComplexitySimple
	}
}

// Weight returns the surcharge fraction applied to the quote subtotal.
func (c Complexity) Weight() float64 {
	switch c {
	case ComplexityStandard:
		return 0.05
	case ComplexityAvancee:
		return 0.12
	case ComplexityPremium:
		return 0.20
	default:
		return 0
	}
}

func (c Complexity) String() string {
	switch c {
	case ComplexityStandard:
		return "standard"
	case ComplexityAvancee:
		return "avancée"
	case ComplexityPremium:
		return "premium"
	default:
		return "simple"
	}
}

// Style is the visual style of a video.
type Style int

const (
	StyleFlat Style = iota
	StyleIsometrique
	StyleIllustration
	StyleIllustrationDetaillee
	Style3D
	StyleAutre
)

// ParseStyle maps a free-form label to a style. Matching is
// case-insensitive; unknown labels fall back to flat.
func ParseStyle(label string) Style {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "isometrique", "isométrique":
		return StyleIsometrique
	case "illustration":
		return StyleIllustration
	case "illustration détaillée", "illustration detaillee":
		return StyleIllustrationDetaillee
	case "3d":
		return Style3D
	case "autre":
		return StyleAutre
	default:
		return StyleFlat
	}
}

// Weight returns the surcharge fraction applied to the quote subtotal.
func (s Style) Weight() float64 {
	switch s {
	case StyleIsometrique:
		return 0.06
	case StyleIllustration, StyleIllustrationDetaillee:
		return 0.10
	case Style3D:
		return 0.18
	case StyleAutre:
		return 0.04
	default:
		return 0
	}
}

func (s Style) String() string {
	switch s {
	case StyleIsometrique:
		return "isométrique"
	case StyleIllustration:
		return "illustration"
	case StyleIllustrationDetaillee:
		return "illustration détaillée"
	case Style3D:
		return "3d"
	case StyleAutre:
		return "autre"
	default:
		return "flat"
	}
}

// VideoType is the commercial category of the project.
type VideoType int

const (
	VideoTypeUnknown VideoType = iota
	VideoTypeExplicative
	VideoTypePublicite
	VideoTypeReseauxSociaux
	VideoTypeCorporate
	VideoTypeAutre
)

// ParseVideoType maps a project label to a video type. Unlike complexity
// and style, the match is exact: anything else is unknown and carries no
// surcharge.
func ParseVideoType(label string) VideoType {
	switch label {
	case "Explicative":
		return VideoTypeExplicative
	case "Publicité":
		return VideoTypePublicite
	case "Réseaux sociaux":
		return VideoTypeReseauxSociaux
	case "Corporate":
		return VideoTypeCorporate
	case "Autre":
		return VideoTypeAutre
	default:
		return VideoTypeUnknown
	}
}

// Weight returns the surcharge fraction applied to the quote subtotal.
func (t VideoType) Weight() float64 {
	switch t {
	case VideoTypePublicite:
		return 0.08
	case VideoTypeReseauxSociaux:
		return 0.04
	case VideoTypeCorporate:
		return 0.05
	case VideoTypeAutre:
		return 0.02
	default:
		return 0
	}
}

func (t VideoType) String() string {
	switch t {
	case VideoTypeExplicative:
		return "Explicative"
	case VideoTypePublicite:
		return "Publicité"
	case VideoTypeReseauxSociaux:
		return "Réseaux sociaux"
	case VideoTypeCorporate:
		return "Corporate"
	case VideoTypeAutre:
		return "Autre"
	default:
		return ""
	}
}
