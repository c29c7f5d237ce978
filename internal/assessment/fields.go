package assessment

import "strings"

// ValidateCustomerName checks a customer name form field. Returns ""
// when the name is acceptable, otherwise a user-facing message.
func ValidateCustomerName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "Customer name is required"
	}
	if len(trimmed) < 2 {
		return "Customer name must be at least 2 characters"
	}
	if !strings.ContainsFunc(trimmed, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}) {
		return "Customer name must contain letters"
	}
	return ""
}

// ValidateCloudProviders checks the provider selection. Returns "" when
// acceptable, otherwise a user-facing message.
func ValidateCloudProviders(providers []CloudProvider) string {
	if len(providers) == 0 {
		return "Please select at least one cloud provider"
	}
	for _, p := range providers {
		if !p.Valid() {
			return "Unknown cloud provider: " + string(p)
		}
	}
	return ""
}
