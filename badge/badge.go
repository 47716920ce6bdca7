// Package badge derives gamification tiers from cumulative points and applies
// quiz-completion awards to the user's point total.
package badge

// Tier is one badge level with its inclusive lower bound
type Tier struct {
	Name      string `json:"name"`
	Threshold uint   `json:"threshold"`
}

// Tiers is the badge ladder, ascending. Values are configuration; the lookup
// always picks the highest tier whose threshold is <= the point total.
var Tiers = []Tier{
	{Name: "Newbie", Threshold: 0},
	{Name: "Explorer", Threshold: 20},
	{Name: "Achiever", Threshold: 40},
	{Name: "Specialist", Threshold: 60},
	{Name: "Expert", Threshold: 80},
	{Name: "Master", Threshold: 100},
}

// ForPoints returns the highest tier whose threshold is <= points
func ForPoints(points uint) Tier {
	current := Tiers[0]
	for _, t := range Tiers {
		if t.Threshold <= points {
			current = t
		}
	}
	return current
}

// Next returns the lowest tier whose threshold exceeds points, or nil when
// already at the top tier
func Next(points uint) *Tier {
	for _, t := range Tiers {
		if t.Threshold > points {
			next := t
			return &next
		}
	}
	return nil
}

// ProgressToNext returns how far the user is between the current tier and the
// next one, as a percentage. At the top tier it is 100.
func ProgressToNext(points uint) float64 {
	current := ForPoints(points)
	next := Next(points)
	if next == nil {
		return 100
	}
	return float64(points-current.Threshold) / float64(next.Threshold-current.Threshold) * 100
}
