package models

import "strings"

// Area is a country or region grouping competitions
type Area struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

// AreasResponse is the /areas envelope
type AreasResponse struct {
	Count int    `json:"count"`
	Areas []Area `json:"areas"`
}

// Competition is a league or cup
type Competition struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	Type string `json:"type"`
	Area Area   `json:"area"`
}

// CompetitionsResponse is the /competitions envelope
type CompetitionsResponse struct {
	Count        int           `json:"count"`
	Competitions []Competition `json:"competitions"`
}

// FindArea returns the area whose name matches name case-insensitively
func (r *AreasResponse) FindArea(name string) (Area, bool) {
	for _, a := range r.Areas {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return Area{}, false
}

// FindCompetition returns the competition whose name matches name case-insensitively
func (r *CompetitionsResponse) FindCompetition(name string) (Competition, bool) {
	for _, c := range r.Competitions {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Competition{}, false
}
