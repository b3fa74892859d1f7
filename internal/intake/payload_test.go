package intake

import (
	"strings"
	"testing"
	"time"
)

func TestBuildPayloadEnglish(t *testing.T) {
	req := &ConsultationRequest{
		Name:             "Jane Doe",
		Email:            "jane@x.com",
		Phone:            "+971500000000",
		Company:          "Acme FZ-LLC",
		BusinessType:     "llc",
		Services:         []string{"vat", "accounting"},
		Budget:           "10k-25k",
		Timeline:         "immediate",
		PreferredContact: "email",
		PreferredTime:    "morning",
		Message:          "Need help with VAT filing.",
		Language:         LanguageEnglish,
	}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	payload := BuildPayload(req, "req-1", req.IdempotencyKey(), "smartpro-consultation-form", now)

	if payload.FormType != "consultation" {
		t.Errorf("form_type: %q", payload.FormType)
	}
	if payload.ClientName != "Jane Doe" || payload.Email != "jane@x.com" {
		t.Errorf("identity fields: %q %q", payload.ClientName, payload.Email)
	}
	if payload.ServiceInterested != "VAT" {
		t.Errorf("service_interested: %q", payload.ServiceInterested)
	}
	if payload.ServiceInterestedTranslated != "VAT" {
		t.Errorf("service_interested_translated: %q", payload.ServiceInterestedTranslated)
	}
	if payload.ServicesSummary != "VAT, Accounting" {
		t.Errorf("services_summary: %q", payload.ServicesSummary)
	}
	if payload.BusinessType != "Limited Liability Company (LLC)" {
		t.Errorf("business_type: %q", payload.BusinessType)
	}
	if payload.Budget != "$10,000 - $25,000" {
		t.Errorf("budget: %q", payload.Budget)
	}
	if payload.Timestamp != "2026-08-30T12:00:00Z" {
		t.Errorf("timestamp: %q", payload.Timestamp)
	}
	if payload.IdempotencyKey != "jane@x.com:jane doe:accounting,vat" {
		t.Errorf("idempotency_key: %q", payload.IdempotencyKey)
	}
	if payload.RequestID != "req-1" {
		t.Errorf("request_id: %q", payload.RequestID)
	}
	if !strings.Contains(payload.Notes, "Primary Message: Need help with VAT filing.") {
		t.Errorf("notes missing message: %q", payload.Notes)
	}
	if !strings.Contains(payload.Notes, "Preferred Time: Morning (9 AM - 12 PM)") {
		t.Errorf("notes missing contact time: %q", payload.Notes)
	}
}

func TestBuildPayloadArabicKeepsRoutingEnglish(t *testing.T) {
	req := &ConsultationRequest{
		Name:     "Jane Doe",
		Email:    "jane@x.com",
		Services: []string{"vat"},
		Language: LanguageArabic,
	}

	payload := BuildPayload(req, "req-2", req.IdempotencyKey(), "smartpro-consultation-form", time.Now())

	// Routing stays English so the workflow engine's rules keep matching.
	if payload.ServiceInterested != "VAT" {
		t.Errorf("service_interested must stay English, got %q", payload.ServiceInterested)
	}
	if payload.ServiceInterestedTranslated != "تسجيل ضريبة القيمة المضافة والإيداع" {
		t.Errorf("service_interested_translated: %q", payload.ServiceInterestedTranslated)
	}
	if payload.ServicesEnglish[0] != "VAT" {
		t.Errorf("services_english: %v", payload.ServicesEnglish)
	}
	if payload.Services[0] != "تسجيل ضريبة القيمة المضافة والإيداع" {
		t.Errorf("services should be Arabic display values: %v", payload.Services)
	}
	if !strings.Contains(payload.Notes, "الخدمات المختارة") {
		t.Errorf("notes should carry Arabic labels: %q", payload.Notes)
	}
}

func TestBuildNotesEmptyFallback(t *testing.T) {
	if got := buildNotes(&ConsultationRequest{}); got != "No additional information provided" {
		t.Errorf("got %q", got)
	}
}

func TestBuildNotesIncludesLanguageLine(t *testing.T) {
	req := &ConsultationRequest{Language: LanguageEnglish}
	if got := buildNotes(req); !strings.Contains(got, "Language: en") {
		t.Errorf("got %q", got)
	}
}
