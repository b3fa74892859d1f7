package intake

import (
	"strings"
	"testing"
)

func validRequest() *ConsultationRequest {
	return &ConsultationRequest{
		Name:     "Jane Doe",
		Email:    "jane@x.com",
		Services: []string{"vat"},
		Language: LanguageEnglish,
	}
}

func TestNormalizeTrimsAndDefaults(t *testing.T) {
	req := &ConsultationRequest{
		Name:    "  Jane Doe  ",
		Email:   " jane@x.com ",
		Phone:   " +971 50 000 0000 ",
		Message: "  hello  ",
	}
	req.Normalize()

	if req.Name != "Jane Doe" {
		t.Errorf("name not trimmed: %q", req.Name)
	}
	if req.Email != "jane@x.com" {
		t.Errorf("email not trimmed: %q", req.Email)
	}
	if req.Phone != "+971 50 000 0000" {
		t.Errorf("phone not trimmed: %q", req.Phone)
	}
	if req.Message != "hello" {
		t.Errorf("message not trimmed: %q", req.Message)
	}
	if req.Language != LanguageEnglish {
		t.Errorf("expected default language en, got %q", req.Language)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	req := &ConsultationRequest{
		Name:     "J",
		Email:    "nope",
		Language: "fr",
	}
	errs := req.Validate()

	fields := make(map[string]bool)
	for _, fe := range errs {
		fields[fe.Field] = true
	}
	for _, want := range []string{"name", "email", "services", "language"} {
		if !fields[want] {
			t.Errorf("expected violation for %q, got %v", want, errs)
		}
	}
}

func TestValidateFieldRules(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*ConsultationRequest)
		wantErr string // field name, empty means valid
	}{
		{"valid minimal", func(r *ConsultationRequest) {}, ""},
		{"valid arabic", func(r *ConsultationRequest) { r.Language = LanguageArabic }, ""},
		{"name too long", func(r *ConsultationRequest) { r.Name = strings.Repeat("a", 101) }, "name"},
		{"name at max", func(r *ConsultationRequest) { r.Name = strings.Repeat("a", 100) }, ""},
		{"email display name rejected", func(r *ConsultationRequest) { r.Email = "Jane <jane@x.com>" }, "email"},
		{"blank service key", func(r *ConsultationRequest) { r.Services = []string{"vat", "  "} }, "services"},
		{"message too long", func(r *ConsultationRequest) { r.Message = strings.Repeat("a", 5001) }, "message"},
		{"message at max", func(r *ConsultationRequest) { r.Message = strings.Repeat("a", 5000) }, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			errs := req.Validate()
			if tc.wantErr == "" {
				if len(errs) != 0 {
					t.Fatalf("expected valid, got %v", errs)
				}
				return
			}
			for _, fe := range errs {
				if fe.Field == tc.wantErr {
					return
				}
			}
			t.Fatalf("expected violation for %q, got %v", tc.wantErr, errs)
		})
	}
}

func TestValidateCountsCharactersNotBytes(t *testing.T) {
	// Arabic text is multi-byte in UTF-8; limits apply per character.
	req := validRequest()
	req.Language = LanguageArabic
	req.Name = strings.Repeat("م", 60)
	req.Message = strings.Repeat("م", 3000)
	if errs := req.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid Arabic submission, got %v", errs)
	}

	req.Name = strings.Repeat("م", 100)
	req.Message = strings.Repeat("م", 5000)
	if errs := req.Validate(); len(errs) != 0 {
		t.Fatalf("expected limits to hold at exactly max characters, got %v", errs)
	}

	req.Name = strings.Repeat("م", 101)
	errs := req.Validate()
	if len(errs) != 1 || errs[0].Field != "name" {
		t.Fatalf("expected name violation past 100 characters, got %v", errs)
	}

	req.Name = strings.Repeat("م", 60)
	req.Message = strings.Repeat("م", 5001)
	errs = req.Validate()
	if len(errs) != 1 || errs[0].Field != "message" {
		t.Fatalf("expected message violation past 5000 characters, got %v", errs)
	}
}

func TestSubmissionKeyCanonicalizes(t *testing.T) {
	a := &ConsultationRequest{Name: "Jane Doe", Email: "Jane@X.com"}
	b := &ConsultationRequest{Name: "  jane doe ", Email: "jane@x.com"}

	if a.SubmissionKey() != "jane@x.com:jane doe" {
		t.Errorf("unexpected key %q", a.SubmissionKey())
	}
	if a.SubmissionKey() != b.SubmissionKey() {
		t.Errorf("keys should match: %q vs %q", a.SubmissionKey(), b.SubmissionKey())
	}
}

func TestIdempotencyKeySortsServices(t *testing.T) {
	a := &ConsultationRequest{Name: "Jane Doe", Email: "jane@x.com", Services: []string{"vat", "accounting"}}
	b := &ConsultationRequest{Name: "Jane Doe", Email: "jane@x.com", Services: []string{"accounting", "vat"}}

	if a.IdempotencyKey() != b.IdempotencyKey() {
		t.Errorf("reordered services should collide: %q vs %q", a.IdempotencyKey(), b.IdempotencyKey())
	}
	if a.IdempotencyKey() != "jane@x.com:jane doe:accounting,vat" {
		t.Errorf("unexpected key %q", a.IdempotencyKey())
	}

	c := &ConsultationRequest{Name: "Jane Doe", Email: "jane@x.com", Services: []string{"vat"}}
	if c.IdempotencyKey() != "jane@x.com:jane doe:vat" {
		t.Errorf("unexpected key %q", c.IdempotencyKey())
	}
}
