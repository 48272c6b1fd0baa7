package scheduler

// DialParams are the resolved difficulty-dial outputs: interval scaling for
// review updates, adjusted pool weights, the diversity exponent, and the cap
// on consecutive high-difficulty picks.
type DialParams struct {
	Tier               Tier    `json:"tier"`
	IntervalMultiplier float64 `json:"interval_multiplier"`
	WDue               float64 `json:"w_due"`
	WInterleave        float64 `json:"w_interleave"`
	WNew               float64 `json:"w_new"`
	Beta               float64 `json:"beta"`
	HardRunCap         int     `json:"hard_run_cap"`
	Description        string  `json:"description"`

	// Coerced is set when an unknown tier was silently mapped to medium,
	// so callers can report it.
	Coerced bool `json:"coerced,omitempty"`
}

// w_new bounds after the tier delta is applied.
const (
	minNewWeight = 0.05
	maxNewWeight = 0.30
)

type dialEntry struct {
	intervalMultiplier float64
	newDelta           float64
	beta               float64
	hardRunCap         int
	description        string
}

var dialTable = map[Tier]dialEntry{
	TierLow: {
		intervalMultiplier: 0.8,
		newDelta:           -0.05,
		beta:               0.8,
		hardRunCap:         2,
		description:        "Gentler pace: shorter intervals, fewer new cards",
	},
	TierMedium: {
		intervalMultiplier: 1.0,
		newDelta:           0,
		beta:               1.0,
		hardRunCap:         2,
		description:        "Standard pace",
	},
	TierHigh: {
		intervalMultiplier: 1.2,
		newDelta:           0.05,
		beta:               1.2,
		hardRunCap:         1,
		description:        "Challenge pace: longer intervals, more new cards",
	},
}

// ResolveDial maps a difficulty tier and the raw config pool weights to the
// dial parameters. An unknown tier coerces to medium with Coerced set. Pure
// function; safe to call concurrently.
func ResolveDial(tier Tier, wDue, wInterleave, wNew float64) DialParams {
	entry, ok := dialTable[tier]
	coerced := false
	if !ok {
		tier = TierMedium
		entry = dialTable[TierMedium]
		coerced = true
	}

	wDue, wInterleave, wNew = normalizeWeights(wDue, wInterleave, wNew)

	wNew += entry.newDelta
	if wNew < minNewWeight {
		wNew = minNewWeight
	}
	if wNew > maxNewWeight {
		wNew = maxNewWeight
	}
	wDue, wInterleave, wNew = normalizeWeights(wDue, wInterleave, wNew)

	return DialParams{
		Tier:               tier,
		IntervalMultiplier: entry.intervalMultiplier,
		WDue:               wDue,
		WInterleave:        wInterleave,
		WNew:               wNew,
		Beta:               entry.beta,
		HardRunCap:         entry.hardRunCap,
		Description:        entry.description,
		Coerced:            coerced,
	}
}

// normalizeWeights scales the three pool weights to sum to 1.0. All-zero
// (or otherwise non-normalizable) weights fall back to the 0.60/0.25/0.15
// defaults.
func normalizeWeights(wDue, wInterleave, wNew float64) (float64, float64, float64) {
	if wDue < 0 {
		wDue = 0
	}
	if wInterleave < 0 {
		wInterleave = 0
	}
	if wNew < 0 {
		wNew = 0
	}
	sum := wDue + wInterleave + wNew
	if sum <= 0 {
		return 0.60, 0.25, 0.15
	}
	return wDue / sum, wInterleave / sum, wNew / sum
}
