package worker

import "strings"

// Category labels assigned to processed tickets.
const (
	CategoryTechnical = "Technical"
	CategoryBilling   = "Billing"
	CategoryGeneral   = "General"
)

var categoryKeywords = map[string][]string{
	CategoryTechnical: {
		"error", "crash", "bug", "broken", "not working", "login",
		"password", "printer", "network", "install", "update", "server",
	},
	CategoryBilling: {
		"invoice", "payment", "charge", "refund", "bill", "subscription",
		"price", "credit card",
	},
}

// Classify assigns a category to a ticket description by keyword match.
// Technical wins over Billing when both match; General is the fallback.
func Classify(description string) string {
	lowered := strings.ToLower(description)
	for _, category := range []string{CategoryTechnical, CategoryBilling} {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lowered, keyword) {
				return category
			}
		}
	}
	return CategoryGeneral
}

// Summarize produces the one-line summary stored on the ticket.
func Summarize(category, description string) string {
	return "User reported a " + category + " issue: " + preview(description, 60)
}

func preview(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
