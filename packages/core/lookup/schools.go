// Package lookup provides an immutable directory of Division 3 wrestling
// schools: canonical names, common aliases, and region/conference membership.
// The directory is built once at startup and injected wherever school
// metadata is needed; nothing mutates it afterwards.
package lookup

import (
	"sort"
	"strings"
)

type Directory struct {
	schools     map[string]string // lowercased name -> canonical name
	aliases     map[string]string // lowercased alias -> canonical name
	regions     map[string]string // canonical name -> region
	conferences map[string]string // canonical name -> conference
}

// NewDirectory builds the default directory.
func NewDirectory() *Directory {
	d := &Directory{
		schools:     make(map[string]string),
		aliases:     make(map[string]string),
		regions:     make(map[string]string),
		conferences: make(map[string]string),
	}

	for _, name := range d3WrestlingSchools {
		d.schools[strings.ToLower(name)] = name
	}
	for alias, canonical := range schoolAliases {
		d.aliases[strings.ToLower(alias)] = canonical
	}
	for school, rc := range schoolRegions {
		d.regions[school] = rc.region
		d.conferences[school] = rc.conference
	}

	return d
}

// Canonical resolves a raw school name to its canonical form, applying alias
// lookup. Unknown schools come back trimmed but otherwise untouched.
func (d *Directory) Canonical(school string) string {
	trimmed := strings.TrimSpace(school)
	key := strings.ToLower(trimmed)
	if canonical, ok := d.aliases[key]; ok {
		return canonical
	}
	if canonical, ok := d.schools[key]; ok {
		return canonical
	}
	return trimmed
}

// IsKnown reports whether the school (or one of its aliases) is in the
// directory.
func (d *Directory) IsKnown(school string) bool {
	key := strings.ToLower(strings.TrimSpace(school))
	if _, ok := d.aliases[key]; ok {
		return true
	}
	_, ok := d.schools[key]
	return ok
}

// Region returns the school's region; ok is false when the directory has no
// region on record.
func (d *Directory) Region(school string) (string, bool) {
	region, ok := d.regions[d.Canonical(school)]
	return region, ok
}

// Conference returns the school's conference; ok is false when the directory
// has no conference on record.
func (d *Directory) Conference(school string) (string, bool) {
	conference, ok := d.conferences[d.Canonical(school)]
	return conference, ok
}

// Schools returns every canonical school name, sorted.
func (d *Directory) Schools() []string {
	names := make([]string, 0, len(d.schools))
	for _, name := range d.schools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type regionConference struct {
	region     string
	conference string
}

// Division 3 schools with wrestling programs.
var d3WrestlingSchools = []string{
	"Adrian College", "Albion College", "Alfred State", "Alma College", "Alvernia University",
	"Augsburg University", "Augustana (IL)", "Aurora University", "Averett University",
	"Baldwin Wallace", "Bridgewater State University", "Brockport State", "Buena Vista",
	"Carthage College", "Case Western Reserve", "Castleton University", "Centenary (NJ)",
	"Central College", "Chicago", "Coast Guard", "Coe College", "Concordia (WI)",
	"Concordia - Moorhead", "Cornell College", "Defiance College", "Delaware Valley",
	"Dubuque", "Elizabethtown", "Elmhurst University", "Elmira", "Eureka College",
	"Ferrum College", "Fontboone University", "Gettysburg", "Greensboro College",
	"Heidelberg", "Hiram College", "Hunter College", "Huntingdon College",
	"Illinois Wesleyan", "Ithaca", "John Carroll University", "Johns Hopkins",
	"Johnson & Wales", "Keystone College", "King's College (PA)", "Lakeland",
	"Linfield University", "Loras College", "Luther College", "Lycoming", "Manchester",
	"Marymount University", "McDaniel", "Messiah", "Millikin",
	"Milwaukee School of Engineering", "Mount St. Joseph", "Mount Union", "Muhlenberg",
	"Muskingum", "Nebraska Wesleyan University", "New England College",
	"New Jersey City University", "New York University", "North Central (IL)", "Norwich",
	"Ohio Northern", "Ohio Wesleyan University", "Olivet", "Oneonta State",
	"Otterbein Univeristy", "Penn State Behrend", "Pennsylvania College of Technology",
	"Pittsburg - Bradford", "Plymouth State", "Rhode Island College", "Roanoke College",
	"Rochester Institute of Technology", "Roger Williams", "Schreiner University",
	"Shenandoah University", "Simpson College", "Southern Maine", "Southern Virginia",
	"Springfield", "St. John Fisher College", "St. Johns (MN)", "St. Vincent College",
	"Stevens Institute of Technology", "SUNY - Cortland", "SUNY - Oswego",
	"The College of New Jersey", "Thiel", "Trine University", "Trinity (CT)",
	"U.S. Merchant Marine", "University of Scranton", "University of the Ozarks",
	"Ursinus College", "Utica University", "Wabash", "Wartburg College",
	"Washington and Jefferson", "Washington and Lee", "Waynesburg", "Wesleyan (CT)",
	"Western New England", "Westminister", "Wheaton (IL)", "Wilkes", "Williams College",
	"Wilmington (OH)", "Wisconsin - Eau Claire", "Wisconsin - La Crosse",
	"Wisconsin - Oshkosh", "Wisconsin - Platteville", "Wisconsin - Stevens Point",
	"Wisconsin - Whitewater", "Worcester Polytechnic", "York College (PA)",
}

// Frequent misspellings and shorthand seen in imported result sheets.
var schoolAliases = map[string]string{
	"RIT":                 "Rochester Institute of Technology",
	"TCNJ":                "The College of New Jersey",
	"NYU":                 "New York University",
	"WPI":                 "Worcester Polytechnic",
	"MSOE":                "Milwaukee School of Engineering",
	"UW-Eau Claire":       "Wisconsin - Eau Claire",
	"UW-La Crosse":        "Wisconsin - La Crosse",
	"UW-Oshkosh":          "Wisconsin - Oshkosh",
	"UW-Platteville":      "Wisconsin - Platteville",
	"UW-Stevens Point":    "Wisconsin - Stevens Point",
	"UW-Whitewater":       "Wisconsin - Whitewater",
	"Johns Hopkins Univ.": "Johns Hopkins",
	"Merchant Marine":     "U.S. Merchant Marine",
	"Scranton":            "University of Scranton",
}

// Region and conference membership for schools with a known affiliation.
// Schools absent from this map still rank; they sort last on region and
// conference leaderboards.
var schoolRegions = map[string]regionConference{
	"Wisconsin - Eau Claire":            {"Upper Midwest", "WIAC"},
	"Wisconsin - La Crosse":             {"Upper Midwest", "WIAC"},
	"Wisconsin - Oshkosh":               {"Upper Midwest", "WIAC"},
	"Wisconsin - Platteville":           {"Upper Midwest", "WIAC"},
	"Wisconsin - Stevens Point":         {"Upper Midwest", "WIAC"},
	"Wisconsin - Whitewater":            {"Upper Midwest", "WIAC"},
	"Augsburg University":               {"Upper Midwest", "MIAC"},
	"Concordia - Moorhead":              {"Upper Midwest", "MIAC"},
	"St. Johns (MN)":                    {"Upper Midwest", "MIAC"},
	"Wartburg College":                  {"Central", "ARC"},
	"Loras College":                     {"Central", "ARC"},
	"Coe College":                       {"Central", "ARC"},
	"Central College":                   {"Central", "ARC"},
	"Simpson College":                   {"Central", "ARC"},
	"Luther College":                    {"Central", "ARC"},
	"Buena Vista":                       {"Central", "ARC"},
	"Dubuque":                           {"Central", "ARC"},
	"Cornell College":                   {"Central", "MWC"},
	"Nebraska Wesleyan University":      {"Central", "ARC"},
	"Baldwin Wallace":                   {"Great Lakes", "OAC"},
	"Heidelberg":                        {"Great Lakes", "OAC"},
	"John Carroll University":           {"Great Lakes", "OAC"},
	"Mount Union":                       {"Great Lakes", "OAC"},
	"Muskingum":                         {"Great Lakes", "OAC"},
	"Ohio Northern":                     {"Great Lakes", "OAC"},
	"Otterbein Univeristy":              {"Great Lakes", "OAC"},
	"Wilmington (OH)":                   {"Great Lakes", "OAC"},
	"Adrian College":                    {"Great Lakes", "MIAA"},
	"Albion College":                    {"Great Lakes", "MIAA"},
	"Alma College":                      {"Great Lakes", "MIAA"},
	"Olivet":                            {"Great Lakes", "MIAA"},
	"Trine University":                  {"Great Lakes", "MIAA"},
	"Case Western Reserve":              {"Great Lakes", "UAA"},
	"Chicago":                           {"Great Lakes", "UAA"},
	"New York University":               {"Northeast", "UAA"},
	"Ithaca":                            {"Northeast", "Liberty League"},
	"Rochester Institute of Technology": {"Northeast", "Liberty League"},
	"St. John Fisher College":           {"Northeast", "Empire 8"},
	"Utica University":                  {"Northeast", "Empire 8"},
	"Alfred State":                      {"Northeast", "AMCC"},
	"Penn State Behrend":                {"Northeast", "AMCC"},
	"Pittsburg - Bradford":              {"Northeast", "AMCC"},
	"Brockport State":                   {"Northeast", "SUNYAC"},
	"SUNY - Cortland":                   {"Northeast", "SUNYAC"},
	"SUNY - Oswego":                     {"Northeast", "SUNYAC"},
	"Oneonta State":                     {"Northeast", "SUNYAC"},
	"Coast Guard":                       {"New England", "NEWA"},
	"Norwich":                           {"New England", "NEWA"},
	"Plymouth State":                    {"New England", "NEWA"},
	"Rhode Island College":              {"New England", "NEWA"},
	"Roger Williams":                    {"New England", "NEWA"},
	"Southern Maine":                    {"New England", "NEWA"},
	"Springfield":                       {"New England", "NEWA"},
	"Trinity (CT)":                      {"New England", "NEWA"},
	"U.S. Merchant Marine":              {"New England", "NEWA"},
	"Wesleyan (CT)":                     {"New England", "NEWA"},
	"Western New England":               {"New England", "NEWA"},
	"Williams College":                  {"New England", "NEWA"},
	"New England College":               {"New England", "NEWA"},
	"Castleton University":              {"New England", "NEWA"},
	"Bridgewater State University":      {"New England", "NEWA"},
	"Johnson & Wales":                   {"New England", "NEWA"},
	"Worcester Polytechnic":             {"New England", "NEWA"},
	"Delaware Valley":                   {"Mid-Atlantic", "MAC"},
	"Elizabethtown":                     {"Mid-Atlantic", "Landmark"},
	"King's College (PA)":               {"Mid-Atlantic", "MAC"},
	"Lycoming":                          {"Mid-Atlantic", "MAC"},
	"Messiah":                           {"Mid-Atlantic", "MAC"},
	"Wilkes":                            {"Mid-Atlantic", "Landmark"},
	"University of Scranton":            {"Mid-Atlantic", "Landmark"},
	"Gettysburg":                        {"Mid-Atlantic", "Centennial"},
	"Johns Hopkins":                     {"Mid-Atlantic", "Centennial"},
	"McDaniel":                          {"Mid-Atlantic", "Centennial"},
	"Muhlenberg":                        {"Mid-Atlantic", "Centennial"},
	"Ursinus College":                   {"Mid-Atlantic", "Centennial"},
	"The College of New Jersey":         {"Mid-Atlantic", "NJAC"},
	"New Jersey City University":        {"Mid-Atlantic", "NJAC"},
	"Stevens Institute of Technology":   {"Mid-Atlantic", "MAC"},
	"Averett University":                {"Southeast", "ODAC"},
	"Ferrum College":                    {"Southeast", "ODAC"},
	"Roanoke College":                   {"Southeast", "ODAC"},
	"Shenandoah University":             {"Southeast", "ODAC"},
	"Southern Virginia":                 {"Southeast", "ODAC"},
	"Washington and Lee":                {"Southeast", "ODAC"},
	"Greensboro College":                {"Southeast", "USA South"},
	"Huntingdon College":                {"Southeast", "USA South"},
	"Augustana (IL)":                    {"Midwest", "CCIW"},
	"Carthage College":                  {"Midwest", "CCIW"},
	"Elmhurst University":               {"Midwest", "CCIW"},
	"Illinois Wesleyan":                 {"Midwest", "CCIW"},
	"Millikin":                          {"Midwest", "CCIW"},
	"North Central (IL)":                {"Midwest", "CCIW"},
	"Wheaton (IL)":                      {"Midwest", "CCIW"},
	"Concordia (WI)":                    {"Midwest", "NACC"},
	"Lakeland":                          {"Midwest", "NACC"},
	"Aurora University":                 {"Midwest", "NACC"},
	"Milwaukee School of Engineering":   {"Midwest", "NACC"},
	"Eureka College":                    {"Midwest", "NACC"},
	"Manchester":                        {"Midwest", "HCAC"},
	"Defiance College":                  {"Midwest", "HCAC"},
	"Mount St. Joseph":                  {"Midwest", "HCAC"},
	"Wabash":                            {"Midwest", "NCAC"},
	"Hiram College":                     {"Midwest", "NCAC"},
	"Ohio Wesleyan University":          {"Midwest", "NCAC"},
}
