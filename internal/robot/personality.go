package robot

// Personality defines the tunable weights for a robot seat. All
// weights are in [0,1]. BluffFrequency, Patience and RiskTolerance are
// carried in the profile for stronger policies but are not consumed by
// the current decision rule; callers must not assume they affect
// behavior.
type Personality struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Tagline        string  `json:"tagline"`
	Aggression     float64 `json:"aggression"`
	BluffFrequency float64 `json:"bluff_frequency"`
	Patience       float64 `json:"patience"`
	RiskTolerance  float64 `json:"risk_tolerance"`
}

// catalogue is the process-wide immutable personality table. Robot
// seats reference entries by ID; nothing rebuilds or mutates this.
var catalogue = []Personality{
	{
		ID:             "rocky",
		Name:           "Rocky",
		Tagline:        "Folds everything but the nuts",
		Aggression:     0.2,
		BluffFrequency: 0.1,
		Patience:       0.9,
		RiskTolerance:  0.2,
	},
	{
		ID:             "steady-eddie",
		Name:           "Steady Eddie",
		Tagline:        "Calls you down all night",
		Aggression:     0.4,
		BluffFrequency: 0.2,
		Patience:       0.7,
		RiskTolerance:  0.4,
	},
	{
		ID:             "vegas",
		Name:           "Vegas",
		Tagline:        "Came to gamble",
		Aggression:     0.65,
		BluffFrequency: 0.5,
		Patience:       0.35,
		RiskTolerance:  0.7,
	},
	{
		ID:             "maniac-mae",
		Name:           "Maniac Mae",
		Tagline:        "Every pot is her pot",
		Aggression:     0.85,
		BluffFrequency: 0.7,
		Patience:       0.1,
		RiskTolerance:  0.9,
	},
}

// Catalogue returns a copy of the built-in personality table
func Catalogue() []Personality {
	out := make([]Personality, len(catalogue))
	copy(out, catalogue)
	return out
}

// Merge returns the catalogue with overrides applied: an override
// whose ID matches a built-in entry replaces that entry in place, any
// other override is appended in order. A nil or empty overrides slice
// returns the plain catalogue.
func Merge(overrides []Personality) []Personality {
	out := Catalogue()
	for _, o := range overrides {
		replaced := false
		for i, p := range out {
			if p.ID == o.ID {
				out[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, o)
		}
	}
	return out
}

// ByID looks up a built-in personality by its stable ID
func ByID(id string) (Personality, bool) {
	for _, p := range catalogue {
		if p.ID == id {
			return p, true
		}
	}
	return Personality{}, false
}

// Assign returns the personality for the i-th robot seat, cycling
// through the catalogue round-robin.
func Assign(i int) Personality {
	if i < 0 {
		i = 0
	}
	return catalogue[i%len(catalogue)]
}
