package validate

// Location is one named coordinate used for cross-validation.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Desc string  `json:"desc,omitempty"`
}

// DefaultLocations covers diverse global terrain: peaks, below-sea-level
// basins, coastal cities, and high plateaus.
var DefaultLocations = []Location{
	{Name: "Mount Fuji", Lat: 35.3606, Lon: 138.7274, Desc: "Japan's highest peak"},
	{Name: "Death Valley", Lat: 36.2308, Lon: -116.7677, Desc: "Below sea level"},
	{Name: "Denver", Lat: 39.7392, Lon: -104.9903, Desc: "Mile High City"},
	{Name: "Tokyo", Lat: 35.6762, Lon: 139.6503, Desc: "Coastal city"},
	{Name: "Cape Town", Lat: -33.9249, Lon: 18.4241, Desc: "Southern hemisphere"},
	{Name: "Amazon Basin", Lat: -3.1190, Lon: -60.0217, Desc: "Tropical lowland"},
	{Name: "Swiss Alps", Lat: 46.5197, Lon: 7.5597, Desc: "Steep terrain"},
	{Name: "La Paz", Lat: -16.5000, Lon: -68.1500, Desc: "High altitude city"},
	{Name: "Grand Canyon", Lat: 36.0544, Lon: -112.1401, Desc: "Dramatic terrain"},
	{Name: "Lhasa", Lat: 29.6500, Lon: 91.1000, Desc: "Tibetan Plateau"},
}

// RefValue is one reference source's reading for a location, with the signed
// difference primary − reference when both values are present.
type RefValue struct {
	Tag   string   `json:"tag"`
	Value *float64 `json:"value,omitempty"`
	Diff  *float64 `json:"diff,omitempty"`
}

// Row holds one location's primary and reference readings. Nil values mean
// "no data", which is a valid state, not an error.
type Row struct {
	Location
	Primary    *float64   `json:"primary,omitempty"`
	References []RefValue `json:"references,omitempty"`
}

// Report is the outcome of one validation run.
type Report struct {
	Rows        []Row            `json:"rows"`
	SourceStats map[string]Stats `json:"source_stats"`
	MaxAbsError float64          `json:"max_abs_error"`
	Comparisons int              `json:"comparisons"`
	Verdict     Verdict          `json:"verdict"`
}

// Verdict classifies the run's worst-case divergence.
type Verdict string

const (
	// VerdictPass means every comparison stayed within the tight threshold.
	VerdictPass Verdict = "pass"
	// VerdictWarning means some comparisons exceeded the tight threshold
	// but none the loose one.
	VerdictWarning Verdict = "warning"
	// VerdictFail means at least one comparison exceeded the loose threshold.
	VerdictFail Verdict = "fail"
	// VerdictInconclusive means no comparison could be made at all.
	VerdictInconclusive Verdict = "inconclusive"
)

const (
	// passThresholdM is the tight agreement threshold in meters.
	passThresholdM = 5.0
	// warnThresholdM is the loose agreement threshold in meters.
	warnThresholdM = 30.0
)

// DeriveVerdict classifies a run from its maximum absolute error and the
// number of comparisons that were possible. Zero comparisons is a distinct
// inconclusive state, not a failure.
func DeriveVerdict(maxAbsError float64, comparisons int) Verdict {
	if comparisons == 0 {
		return VerdictInconclusive
	}
	switch {
	case maxAbsError <= passThresholdM:
		return VerdictPass
	case maxAbsError <= warnThresholdM:
		return VerdictWarning
	default:
		return VerdictFail
	}
}
