package quiz

// Rewards maps attempt number to awarded points. Attempt numbers beyond the
// explicit tiers clamp to MoreTries.
type Rewards struct {
	FirstTry  int `json:"first_try"`
	SecondTry int `json:"second_try"`
	ThirdTry  int `json:"third_try"`
	MoreTries int `json:"more_tries"`
}

// DefaultRewards is applied when a quiz is authored without a reward table
var DefaultRewards = Rewards{
	FirstTry:  20,
	SecondTry: 15,
	ThirdTry:  10,
	MoreTries: 5,
}

// ForAttempt returns the points for the given attempt number
func (r Rewards) ForAttempt(attempt int) int {
	switch {
	case attempt <= 1:
		return r.FirstTry
	case attempt == 2:
		return r.SecondTry
	case attempt == 3:
		return r.ThirdTry
	default:
		return r.MoreTries
	}
}
