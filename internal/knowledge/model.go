package knowledge

// Record is a single OTC knowledge-base entry. Records are created once at
// load time; the embedding is attached during index build and stays nil when
// the embedding service is unavailable.
type Record struct {
	Condition      string `json:"Condition"`
	GenericName    string `json:"Generic Name"`
	BrandNames     string `json:"OTC Brand Names"`
	Precautions    string `json:"Precaution Measures"`
	Dosage         string `json:"Dosages"`
	Duration       string `json:"Duration"`
	AgeSuitability string `json:"Age Suitability"`

	Embedding []float64 `json:"-"`
}

// Skipped describes a source block that was rejected during parsing, so
// dropped entries are observable instead of disappearing silently.
type Skipped struct {
	Line   int
	Reason string
}
