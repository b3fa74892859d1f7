package intake

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Supported submission languages.
const (
	LanguageEnglish = "en"
	LanguageArabic  = "ar"
)

const (
	minNameLen    = 2
	maxNameLen    = 100
	maxMessageLen = 5000
)

// ConsultationRequest is an inbound consultation form submission.
type ConsultationRequest struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone,omitempty"`
	Location         string   `json:"location,omitempty"`
	Company          string   `json:"company,omitempty"`
	BusinessType     string   `json:"businessType,omitempty"`
	Services         []string `json:"services"`
	Budget           string   `json:"budget,omitempty"`
	Timeline         string   `json:"timeline,omitempty"`
	PreferredContact string   `json:"preferredContact,omitempty"`
	PreferredTime    string   `json:"preferredTime,omitempty"`
	Message          string   `json:"message,omitempty"`
	Language         string   `json:"language,omitempty"`
}

// FieldError describes a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Normalize trims free-text fields and applies defaults. Called before
// Validate so length checks see the trimmed values.
func (r *ConsultationRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Location = strings.TrimSpace(r.Location)
	r.Company = strings.TrimSpace(r.Company)
	r.Message = strings.TrimSpace(r.Message)
	if r.Language == "" {
		r.Language = LanguageEnglish
	}
}

// Validate checks every field and returns the full list of violations.
// A submission with any violation is rejected wholesale.
func (r *ConsultationRequest) Validate() []FieldError {
	var errs []FieldError

	// Limits count characters, not bytes: Arabic names and messages are
	// multi-byte in UTF-8.
	if nameLen := utf8.RuneCountInString(r.Name); nameLen < minNameLen {
		errs = append(errs, FieldError{Field: "name", Message: fmt.Sprintf("Name must be at least %d characters", minNameLen)})
	} else if nameLen > maxNameLen {
		errs = append(errs, FieldError{Field: "name", Message: fmt.Sprintf("Name must not exceed %d characters", maxNameLen)})
	}

	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "Email is required"})
	} else if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
		errs = append(errs, FieldError{Field: "email", Message: "Invalid email format"})
	}

	if len(r.Services) == 0 {
		errs = append(errs, FieldError{Field: "services", Message: "At least one service must be selected"})
	} else {
		for _, key := range r.Services {
			if strings.TrimSpace(key) == "" {
				errs = append(errs, FieldError{Field: "services", Message: "Service keys must not be empty"})
				break
			}
		}
	}

	if utf8.RuneCountInString(r.Message) > maxMessageLen {
		errs = append(errs, FieldError{Field: "message", Message: fmt.Sprintf("Message must not exceed %d characters", maxMessageLen)})
	}

	if r.Language != LanguageEnglish && r.Language != LanguageArabic {
		errs = append(errs, FieldError{Field: "language", Message: "Language must be 'en' or 'ar'"})
	}

	return errs
}

// SubmissionKey identifies the submitter for the duplicate window:
// lowercased, trimmed email and name.
func (r *ConsultationRequest) SubmissionKey() string {
	return canonical(r.Email) + ":" + canonical(r.Name)
}

// IdempotencyKey identifies the logical lead for the webhook dedup window.
// Services are sorted so re-submitting the same set in a different UI order
// still collides.
func (r *ConsultationRequest) IdempotencyKey() string {
	return r.SubmissionKey() + ":" + SortedServiceKey(r.Services)
}

func canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
