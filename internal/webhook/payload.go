package webhook

// Payload is the JSON body relayed to the workflow engine. Field names are
// fixed by the downstream scenario configuration; routing fields
// (service_interested, services_english) stay English while display fields
// follow the submitter's language.
type Payload struct {
	FormType                    string   `json:"form_type"`
	ClientName                  string   `json:"client_name"`
	Email                       string   `json:"email"`
	Phone                       string   `json:"phone,omitempty"`
	BusinessName                string   `json:"business_name,omitempty"`
	BusinessType                string   `json:"business_type,omitempty"`
	Services                    []string `json:"services"`
	ServicesEnglish             []string `json:"services_english,omitempty"`
	ServicesSummary             string   `json:"services_summary,omitempty"`
	ServiceInterested           string   `json:"service_interested"`
	ServiceInterestedTranslated string   `json:"service_interested_translated,omitempty"`
	Budget                      string   `json:"budget,omitempty"`
	Timeline                    string   `json:"timeline,omitempty"`
	PreferredContact            string   `json:"preferred_contact,omitempty"`
	PreferredTime               string   `json:"preferred_time,omitempty"`
	Location                    string   `json:"location,omitempty"`
	PrimaryMessage              string   `json:"primary_message,omitempty"`
	Notes                       string   `json:"notes"`
	Language                    string   `json:"language"`
	Source                      string   `json:"source"`
	Timestamp                   string   `json:"timestamp"`
	IdempotencyKey              string   `json:"idempotency_key"`
	RequestID                   string   `json:"request_id"`
}
