package records

import (
	"strings"

	"github.com/healthify/portal/internal/ui/components"
)

// Vital is the latest reading of one vital sign.
type Vital struct {
	Label  string
	Value  string
	Normal bool
	Date   string
}

func (v Vital) Badge() components.Badge {
	if v.Normal {
		return components.Badge{Label: "Normal", Variant: components.BadgeSuccess}
	}
	return components.Badge{Label: "Abnormal", Variant: components.BadgeWarning}
}

type LabStatus string

const (
	LabNormal   LabStatus = "Normal"
	LabImproved LabStatus = "Improved"
	LabAbnormal LabStatus = "Abnormal"
)

var labBadges = map[LabStatus]components.BadgeVariant{
	LabNormal:   components.BadgeSuccess,
	LabImproved: components.BadgeDefault,
	LabAbnormal: components.BadgeError,
}

type LabResult struct {
	ID      string
	Name    string
	Date    string
	Status  LabStatus
	Doctor  string
	Results []string
}

func (l LabResult) Badge() components.Badge {
	return components.Badge{Label: string(l.Status), Variant: labBadges[l.Status]}
}

type Condition struct {
	ID          string
	Name        string
	Diagnosed   string
	Status      string
	Severity    components.Severity
	Doctor      string
	Medications []string
	Notes       string
}

// Managed reports whether the condition is under control.
func (c Condition) Managed() bool {
	return strings.EqualFold(c.Status, "Controlled")
}

func (c Condition) StatusBadge() components.Badge {
	if c.Managed() {
		return components.Badge{Label: c.Status, Variant: components.BadgeSuccess}
	}
	return components.Badge{Label: c.Status, Variant: components.BadgeDefault}
}

type Allergy struct {
	ID        string
	Allergen  string
	Type      string
	Severity  components.Severity
	Reaction  string
	Diagnosed string
	Doctor    string
	Notes     string
}

func (a Allergy) Severe() bool { return a.Severity == components.SeveritySevere }

// Chart is everything on a patient's health record.
type Chart struct {
	Vitals     []Vital
	Labs       []LabResult
	Conditions []Condition
	Allergies  []Allergy
}

// Summary is the overview tab.
type Summary struct {
	LatestBP   string
	RecentLabs int
	Managed    int
	Severe     []Allergy
}

func (c *Chart) Summary() Summary {
	s := Summary{RecentLabs: len(c.Labs)}
	for _, v := range c.Vitals {
		if v.Label == "Blood Pressure" {
			s.LatestBP = v.Value
			break
		}
	}
	for _, cond := range c.Conditions {
		if cond.Managed() {
			s.Managed++
		}
	}
	for _, a := range c.Allergies {
		if a.Severe() {
			s.Severe = append(s.Severe, a)
		}
	}
	return s
}

// sampleChart is the record shown until clinical data is linked.
func sampleChart() *Chart {
	return &Chart{
		Vitals: []Vital{
			{Label: "Blood Pressure", Value: "120/80 mmHg", Normal: true, Date: "2025-01-25"},
			{Label: "Heart Rate", Value: "72 BPM", Normal: true, Date: "2025-01-25"},
			{Label: "Temperature", Value: "98.6°F", Normal: true, Date: "2025-01-25"},
			{Label: "Weight", Value: "70 kg", Normal: true, Date: "2025-01-20"},
			{Label: "BMI", Value: "22.5", Normal: true, Date: "2025-01-20"},
		},
		Labs: []LabResult{
			{ID: "1", Name: "Complete Blood Count (CBC)", Date: "2025-01-20", Status: LabNormal, Doctor: "Dr. Nimal Silva",
				Results: []string{"Hemoglobin: 14.2 g/dL", "White Blood Cells: 7,200/μL", "Platelets: 250,000/μL"}},
			{ID: "2", Name: "Lipid Panel", Date: "2025-01-15", Status: LabImproved, Doctor: "Dr. Nimal Silva",
				Results: []string{"Total Cholesterol: 180 mg/dL", "LDL: 100 mg/dL", "HDL: 60 mg/dL"}},
		},
		Conditions: []Condition{
			{ID: "1", Name: "Hypertension", Diagnosed: "2023-03-15", Status: "Controlled", Severity: components.SeverityModerate,
				Doctor: "Dr. Nimal Silva", Medications: []string{"Lisinopril 10mg daily"},
				Notes: "Well controlled with medication and lifestyle changes. Regular monitoring required."},
			{ID: "2", Name: "Type 2 Diabetes Mellitus", Diagnosed: "2022-08-20", Status: "Controlled", Severity: components.SeverityMild,
				Doctor: "Dr. Priya Jayawardena", Medications: []string{"Metformin 500mg twice daily"},
				Notes: "Good glycemic control achieved with medication and diet management."},
			{ID: "3", Name: "Hyperlipidemia", Diagnosed: "2023-03-15", Status: "Improving", Severity: components.SeverityMild,
				Doctor: "Dr. Nimal Silva", Medications: []string{"Atorvastatin 20mg daily"},
				Notes: "Significant improvement with statin therapy and dietary modifications."},
		},
		Allergies: []Allergy{
			{ID: "1", Allergen: "Penicillin", Type: "Drug Allergy", Severity: components.SeveritySevere,
				Reaction: "Anaphylaxis, skin rash, difficulty breathing", Diagnosed: "2018-05-10", Doctor: "Dr. Kamani Perera",
				Notes: "Avoid all penicillin-based antibiotics. Carry emergency epinephrine."},
			{ID: "2", Allergen: "Shellfish", Type: "Food Allergy", Severity: components.SeverityModerate,
				Reaction: "Hives, swelling, nausea", Diagnosed: "2020-02-14", Doctor: "Dr. Saman Fernando",
				Notes: "Avoid all shellfish and seafood. Antihistamines for mild reactions."},
			{ID: "3", Allergen: "Dust Mites", Type: "Environmental", Severity: components.SeverityMild,
				Reaction: "Sneezing, runny nose, watery eyes", Diagnosed: "2019-11-08", Doctor: "Dr. Ravi Gunawardena",
				Notes: "Seasonal symptoms. Use air purifiers and hypoallergenic bedding."},
		},
	}
}
