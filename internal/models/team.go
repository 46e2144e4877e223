package models

// Team represents a club as returned by /competitions/{id}/teams
type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Venue     string `json:"venue,omitempty"`
	Founded   *int   `json:"founded,omitempty"`
}

// TeamsResponse is the /competitions/{id}/teams envelope
type TeamsResponse struct {
	Count       int         `json:"count"`
	Competition Competition `json:"competition"`
	Teams       []Team      `json:"teams"`
}

// TeamRef is the team summary embedded in match records
type TeamRef struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
}

// DisplayName returns the short name, falling back to the full name
func (t TeamRef) DisplayName() string {
	if t.ShortName != "" {
		return t.ShortName
	}
	return t.Name
}
