package intake

import (
	"sort"
	"strings"
)

// OtherLabel is the routing fallback for unknown service keys.
const OtherLabel = "Other"

// serviceLabels maps form service keys to the display names the downstream
// workflow routes on. Routing names stay English regardless of the
// submitter's language; translated display values travel separately.
var serviceLabels = map[string]string{
	"companyFormation":   "Company Formation",
	"proServices":        "PRO Services",
	"accounting":         "Accounting",
	"vat":                "VAT",
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
	"other":              OtherLabel,
}

// ServiceLabel returns the routing label for a service key, falling back
// to Other for unknown keys.
func ServiceLabel(key string) string {
	if label, ok := serviceLabels[key]; ok {
		return label
	}
	return OtherLabel
}

// PrimaryServiceForRouting picks the label the workflow engine routes
// emails on. The FIRST selected service wins: the engine routes on a single
// name, not a list.
func PrimaryServiceForRouting(services []string) string {
	if len(services) == 0 {
		return OtherLabel
	}
	return ServiceLabel(services[0])
}

// FormatServices maps every selected key to its routing label, keeping
// selection order.
func FormatServices(services []string) []string {
	if len(services) == 0 {
		return []string{OtherLabel}
	}
	labels := make([]string, len(services))
	for i, key := range services {
		labels[i] = ServiceLabel(key)
	}
	return labels
}

// SortedServiceKey joins the service keys in sorted order so logically
// identical selections collide on the same idempotency key regardless of
// UI order.
func SortedServiceKey(services []string) string {
	keys := make([]string, len(services))
	copy(keys, services)
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
