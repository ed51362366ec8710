// Package hotness scores links by recency-weighted popularity
package hotness

import "math"

const (
	// DecayHours caps the age used for decay
	DecayHours = 24
	// FreshHours is the age below which links get the fresh multiplier
	FreshHours = 4

	freshBase = 1.20
	staleBase = 1.05
)

// Score returns round((base - min(age,24)/24) * posts, 8) where base is 1.20
// for links younger than 4h and 1.05 otherwise. Links 4-12h old and 12h+ old
// share the stale base.
func Score(ageHours float64, posts int) float64 {
	frac := math.Min(ageHours, DecayHours) / DecayHours
	base := staleBase
	if ageHours < FreshHours {
		base = freshBase
	}
	return Round8((base - frac) * float64(posts))
}

// Round8 rounds half away from zero to 8 decimal places
func Round8(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}

// Member is one scored entry of a group
type Member struct {
	AgeHours float64
	Posts    int
}

// Group scores a cluster as a single link aged like its oldest member
// and posted as often as all members together
func Group(members []Member) float64 {
	var age float64
	posts := 0
	for _, m := range members {
		age = math.Max(age, m.AgeHours)
		posts += m.Posts
	}
	return Score(age, posts)
}
