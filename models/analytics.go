package models

// AllowedAnalyticsEvents lists the standard pixel events accepted from the storefront.
var AllowedAnalyticsEvents = map[string]bool{
	"PageView":             true,
	"ViewContent":          true,
	"AddToCart":            true,
	"InitiateCheckout":     true,
	"AddPaymentInfo":       true,
	"Purchase":             true,
	"Search":               true,
	"Lead":                 true,
	"CompleteRegistration": true,
}

type AnalyticsUserData struct {
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

type AnalyticsCustomData struct {
	Value       *float64 `json:"value,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	ContentIDs  []string `json:"content_ids,omitempty"`
	ContentType string   `json:"content_type,omitempty"`
	NumItems    *int     `json:"num_items,omitempty"`
	SearchTerm  string   `json:"search_string,omitempty"`
}

type AnalyticsEventRequest struct {
	EventName  string               `json:"event_name" binding:"required"`
	EventID    string               `json:"event_id" binding:"max=128"`
	PageURL    string               `json:"page_url" binding:"max=2048"`
	UserData   AnalyticsUserData    `json:"user_data"`
	CustomData *AnalyticsCustomData `json:"custom_data,omitempty"`
}
