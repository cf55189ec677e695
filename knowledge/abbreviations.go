package knowledge

// Abbreviation maps a shorthand used in questions to its expansion.
type Abbreviation struct {
	Abbr    string
	Meaning string
}

// abbreviations is the glossary enumerated in full in every generation
// prompt. Order is stable so prompts are reproducible across requests.
var abbreviations = []Abbreviation{
	{"WO", "Work Order"},
	{"WO#", "Work Order Number"},
	{"TWO", "Transmission Work Order"},
	{"ISO", "Isometric Drawing"},
	{"MTR", "Material Test Report"},
	{"HN", "Heat Number"},
	{"SN", "Serial Number"},
	{"QA", "Quality Assurance"},
	{"QC", "Quality Control"},
	{"MAOP", "Maximum Allowable Operating Pressure"},
	{"NDE", "Non-Destructive Examination"},
	{"PSI", "Pounds per Square Inch"},
	{"SMYS", "Specified Minimum Yield Strength"},
	{"API", "American Petroleum Institute"},
	{"ASME", "American Society of Mechanical Engineers"},
}
