package types

// ShippingAddress is the contact snapshot frozen into an order at submission
// time. Field names mirror the order service's expected JSON keys.
type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	Region     string `json:"region"`
	Comuna     string `json:"comuna"`
	Referencia string `json:"referencia,omitempty"`
	Telefono   string `json:"telefono"`
	Email      string `json:"email"`
}
