package domain

// Country carries the travel metadata shown on country pages.
type Country struct {
	ID                string   `json:"id"`
	Code              string   `json:"code"`
	Name              string   `json:"name"`
	Capital           string   `json:"capital,omitempty"`
	Region            string   `json:"region,omitempty"`
	Currency          string   `json:"currency,omitempty"`
	Languages         []string `json:"languages,omitempty"`
	VisaRequired      bool     `json:"visa_required"`
	VisaType          string   `json:"visa_type,omitempty"`
	ProcessingTime    string   `json:"processing_time,omitempty"`
	RequiredDocuments []string `json:"required_documents,omitempty"`
	TravelAdvisory    string   `json:"travel_advisory,omitempty"`
	Flag              string   `json:"flag,omitempty"`
}
