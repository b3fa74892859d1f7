package intake

// Display translations for form field keys. The downstream workflow
// renders these in notification emails, so Arabic submissions carry
// Arabic display values while routing fields stay English.

type labelTable map[string]map[string]string

var serviceDisplay = labelTable{
	LanguageEnglish: {
		"companyFormation":   "Company Formation",
		"proServices":        "PRO Services",
		"accounting":         "Accounting & Bookkeeping",
		"vat":                "VAT Registration & Filing",
		"businessConsulting": "Business Consulting",
		"employeeManagement": "Employee Management",
		"crm":                "CRM & Client Management",
		"projectManagement":  "Project Management",
		"elearning":          "E-Learning Platform",
		"contractManagement": "Contract Management",
		"workflowAutomation": "Workflow Automation",
		"analytics":          "Advanced Analytics",
		"api":                "API & Integrations",
		"support":            "24/7 Support",
		"other":              "Other",
	},
	LanguageArabic: {
		"companyFormation":   "تأسيس الشركات",
		"proServices":        "خدمات الـ PRO",
		"accounting":         "المحاسبة والمسك الدفتري",
		"vat":                "تسجيل ضريبة القيمة المضافة والإيداع",
		"businessConsulting": "الاستشارات التجارية",
		"employeeManagement": "إدارة الموظفين",
		"crm":                "إدارة علاقات العملاء",
		"projectManagement":  "إدارة المشاريع",
		"elearning":          "منصة التعلم الإلكتروني",
		"contractManagement": "إدارة العقود",
		"workflowAutomation": "أتمتة سير العمل",
		"analytics":          "التحليلات المتقدمة",
		"api":                "واجهات برمجة التطبيقات والتكامل",
		"support":            "الدعم على مدار الساعة",
		"other":              "أخرى",
	},
}

var businessTypeDisplay = labelTable{
	LanguageEnglish: {
		"soleProprietorship": "Sole Proprietorship",
		"llc":                "Limited Liability Company (LLC)",
		"partnership":        "Partnership",
		"corporation":        "Corporation",
		"freelancer":         "Freelancer",
		"other":              "Other",
	},
	LanguageArabic: {
		"soleProprietorship": "مؤسسة فردية",
		"llc":                "شركة ذات مسؤولية محدودة",
		"partnership":        "شراكة",
		"corporation":        "شركة",
		"freelancer":         "مستقل",
		"other":              "أخرى",
	},
}

var budgetDisplay = labelTable{
	LanguageEnglish: {
		"under5k":  "Under $5,000",
		"5k-10k":   "$5,000 - $10,000",
		"10k-25k":  "$10,000 - $25,000",
		"25k-50k":  "$25,000 - $50,000",
		"50k-100k": "$50,000 - $100,000",
		"over100k": "Over $100,000",
		"notSure":  "Not Sure",
	},
	LanguageArabic: {
		"under5k":  "أقل من 5,000 دولار",
		"5k-10k":   "5,000 - 10,000 دولار",
		"10k-25k":  "10,000 - 25,000 دولار",
		"25k-50k":  "25,000 - 50,000 دولار",
		"50k-100k": "50,000 - 100,000 دولار",
		"over100k": "أكثر من 100,000 دولار",
		"notSure":  "غير متأكد",
	},
}

var timelineDisplay = labelTable{
	LanguageEnglish: {
		"immediate":  "Immediate (Within 1 month)",
		"1-3months":  "1-3 Months",
		"3-6months":  "3-6 Months",
		"6-12months": "6-12 Months",
		"planning":   "Just Planning",
	},
	LanguageArabic: {
		"immediate":  "فوري (خلال شهر)",
		"1-3months":  "1-3 أشهر",
		"3-6months":  "3-6 أشهر",
		"6-12months": "6-12 شهر",
		"planning":   "التخطيط فقط",
	},
}

var contactMethodDisplay = labelTable{
	LanguageEnglish: {
		"email": "Email",
		"phone": "Phone",
		"both":  "Both",
	},
	LanguageArabic: {
		"email": "البريد الإلكتروني",
		"phone": "الهاتف",
		"both":  "كلاهما",
	},
}

var contactTimeDisplay = labelTable{
	LanguageEnglish: {
		"morning":   "Morning (9 AM - 12 PM)",
		"afternoon": "Afternoon (12 PM - 5 PM)",
		"evening":   "Evening (5 PM - 8 PM)",
		"flexible":  "Flexible",
	},
	LanguageArabic: {
		"morning":   "الصباح (9 صباحاً - 12 ظهراً)",
		"afternoon": "بعد الظهر (12 ظهراً - 5 مساءً)",
		"evening":   "المساء (5 مساءً - 8 مساءً)",
		"flexible":  "مرن",
	},
}

// lookup resolves key in the table for language. Unknown keys pass
// through unchanged; empty keys stay empty.
func (t labelTable) lookup(key, language string) string {
	if key == "" {
		return ""
	}
	labels, ok := t[language]
	if !ok {
		labels = t[LanguageEnglish]
	}
	if label, ok := labels[key]; ok {
		return label
	}
	return key
}

// TranslateService returns the display name for a service key.
func TranslateService(key, language string) string {
	return serviceDisplay.lookup(key, language)
}

// TranslateServices maps service keys to display names.
func TranslateServices(services []string, language string) []string {
	out := make([]string, len(services))
	for i, key := range services {
		out[i] = TranslateService(key, language)
	}
	return out
}

// TranslateBusinessType returns the display name for a business type key.
func TranslateBusinessType(key, language string) string {
	return businessTypeDisplay.lookup(key, language)
}

// TranslateBudget returns the display name for a budget key.
func TranslateBudget(key, language string) string {
	return budgetDisplay.lookup(key, language)
}

// TranslateTimeline returns the display name for a timeline key.
func TranslateTimeline(key, language string) string {
	return timelineDisplay.lookup(key, language)
}

// TranslateContactMethod returns the display name for a contact method key.
func TranslateContactMethod(key, language string) string {
	return contactMethodDisplay.lookup(key, language)
}

// TranslateContactTime returns the display name for a contact time key.
func TranslateContactTime(key, language string) string {
	return contactTimeDisplay.lookup(key, language)
}
