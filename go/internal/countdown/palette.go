package countdown

import "github.com/mcdev12/matchday/go/internal/models"

// ColorPair is a base colour and its darker shade.
type ColorPair struct {
	Base  string `json:"base"`
	Shade string `json:"shade"`
}

var palette = map[models.ColorTier]ColorPair{
	models.TierCritical: {Base: "#EF4444", Shade: "#B91C1C"},
	models.TierUrgent:   {Base: "#F97316", Shade: "#C2410C"},
	models.TierWarning:  {Base: "#F59E0B", Shade: "#B45309"},
	models.TierNotice:   {Base: "#3B82F6", Shade: "#1D4ED8"},
	models.TierCalm:     {Base: "#10B981", Shade: "#047857"},
}

// Palette returns the colours for a tier. Unknown tiers get the calm colours.
func Palette(tier models.ColorTier) ColorPair {
	if p, ok := palette[tier]; ok {
		return p
	}
	return palette[models.TierCalm]
}
