package intake

import (
	"strings"
	"time"

	"github.com/smartpro/consultation-intake/internal/webhook"
)

const formType = "consultation"

// BuildPayload shapes the normalized submission into the wire payload the
// workflow engine expects. Routing fields stay English; display fields use
// the submitter's language.
func BuildPayload(req *ConsultationRequest, requestID, idempotencyKey, source string, now time.Time) *webhook.Payload {
	language := req.Language
	englishServices := FormatServices(req.Services)
	displayServices := englishServices
	if language == LanguageArabic {
		displayServices = TranslateServices(req.Services, language)
	}

	primary := PrimaryServiceForRouting(req.Services)
	primaryTranslated := primary
	if language == LanguageArabic && len(displayServices) > 0 {
		primaryTranslated = displayServices[0]
	}

	return &webhook.Payload{
		FormType:                    formType,
		ClientName:                  req.Name,
		Email:                       req.Email,
		Phone:                       req.Phone,
		BusinessName:                req.Company,
		BusinessType:                TranslateBusinessType(req.BusinessType, language),
		Services:                    displayServices,
		ServicesEnglish:             englishServices,
		ServicesSummary:             strings.Join(displayServices, ", "),
		ServiceInterested:           primary,
		ServiceInterestedTranslated: primaryTranslated,
		Budget:                      TranslateBudget(req.Budget, language),
		Timeline:                    TranslateTimeline(req.Timeline, language),
		PreferredContact:            TranslateContactMethod(req.PreferredContact, language),
		PreferredTime:               TranslateContactTime(req.PreferredTime, language),
		Location:                    req.Location,
		PrimaryMessage:              req.Message,
		Notes:                       buildNotes(req),
		Language:                    language,
		Source:                      source,
		Timestamp:                   now.UTC().Format(time.RFC3339),
		IdempotencyKey:              idempotencyKey,
		RequestID:                   requestID,
	}
}

// notes labels per language. The notes block is a single human-readable
// summary the workflow engine drops into notification emails.
var notesLabels = map[string]map[string]string{
	LanguageEnglish: {
		"services": "Services Selected",
		"message":  "Primary Message",
		"phone":    "Phone",
		"location": "Location",
		"business": "Business Type",
		"budget":   "Budget",
		"timeline": "Timeline",
		"contact":  "Preferred Contact",
		"time":     "Preferred Time",
		"language": "Language",
		"empty":    "No additional information provided",
	},
	LanguageArabic: {
		"services": "الخدمات المختارة",
		"message":  "الرسالة الأساسية",
		"phone":    "الهاتف",
		"location": "الموقع",
		"business": "نوع النشاط التجاري",
		"budget":   "الميزانية",
		"timeline": "الجدول الزمني",
		"contact":  "طريقة الاتصال المفضلة",
		"time":     "وقت الاتصال المفضل",
		"language": "اللغة",
		"empty":    "لم يتم تقديم معلومات إضافية",
	},
}

func buildNotes(req *ConsultationRequest) string {
	labels, ok := notesLabels[req.Language]
	if !ok {
		labels = notesLabels[LanguageEnglish]
	}

	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, labels[label]+": "+value)
		}
	}

	add("services", strings.Join(TranslateServices(req.Services, req.Language), ", "))
	add("message", req.Message)
	add("phone", req.Phone)
	add("location", req.Location)
	add("business", TranslateBusinessType(req.BusinessType, req.Language))
	add("budget", TranslateBudget(req.Budget, req.Language))
	add("timeline", TranslateTimeline(req.Timeline, req.Language))
	add("contact", TranslateContactMethod(req.PreferredContact, req.Language))
	add("time", TranslateContactTime(req.PreferredTime, req.Language))
	add("language", req.Language)

	if len(parts) == 0 {
		return labels["empty"]
	}
	return strings.Join(parts, "\n")
}
