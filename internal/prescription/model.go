package prescription

import "strconv"

// Prescription is the artifact handed to the patient: their details plus the
// matched condition's treatment fields. JSON keys match the rendered
// document's labels.
type Prescription struct {
	ID             string `json:"Prescription ID"`
	Date           string `json:"Date"`
	Name           string `json:"Name"`
	Age            int    `json:"Age"`
	Sex            string `json:"Sex"`
	BloodGroup     string `json:"Blood Group"`
	Condition      string `json:"Condition"`
	GenericName    string `json:"Generic Name"`
	BrandNames     string `json:"OTC Brand Names"`
	Precautions    string `json:"Precaution Measures"`
	Dosage         string `json:"Dosages"`
	Duration       string `json:"Duration"`
	AgeSuitability string `json:"Age Suitability"`
}

// Field is one labeled line of the rendered document.
type Field struct {
	Key   string
	Value string
}

// Fields returns the document lines in render order.
func (p Prescription) Fields() []Field {
	return []Field{
		{"Prescription ID", p.ID},
		{"Date", p.Date},
		{"Name", p.Name},
		{"Age", strconv.Itoa(p.Age)},
		{"Sex", p.Sex},
		{"Blood Group", p.BloodGroup},
		{"Condition", p.Condition},
		{"Generic Name", p.GenericName},
		{"OTC Brand Names", p.BrandNames},
		{"Precaution Measures", p.Precautions},
		{"Dosages", p.Dosage},
		{"Duration", p.Duration},
		{"Age Suitability", p.AgeSuitability},
	}
}
