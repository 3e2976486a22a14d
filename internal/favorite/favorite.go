package favorite

// Favorite is the persisted projection of a restaurant: just enough to show
// it in the favorites list without asking the directory again.
type Favorite struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Cuisines string `json:"cuisines"`
	Timings  string `json:"timings"`
}
