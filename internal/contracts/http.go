package contracts

type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Status    string       `json:"status"`
	Code      string       `json:"code,omitempty"`
	Message   string       `json:"message,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Error     ErrorPayload `json:"error"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateShipmentRequest struct {
	SenderInfo         string   `json:"sender_info"`
	ReceiverInfo       string   `json:"receiver_info"`
	Origin             string   `json:"origin"`
	Destination        string   `json:"destination"`
	CustomerEmail      string   `json:"customer_email,omitempty"`
	ProductDescription string   `json:"product_description,omitempty"`
	ImageURLs          []string `json:"image_urls,omitempty"`
	EstimatedDelivery  string   `json:"estimated_delivery,omitempty"`
	CreatedAt          string   `json:"created_at,omitempty"`
}

// UpdateShipmentRequest is a partial update: absent fields stay untouched,
// a present image_urls replaces the whole sequence.
type UpdateShipmentRequest struct {
	Origin             *string   `json:"origin,omitempty"`
	Destination        *string   `json:"destination,omitempty"`
	SenderInfo         *string   `json:"sender_info,omitempty"`
	ReceiverInfo       *string   `json:"receiver_info,omitempty"`
	CustomerEmail      *string   `json:"customer_email,omitempty"`
	ProductDescription *string   `json:"product_description,omitempty"`
	TrackingNumber     *string   `json:"tracking_number,omitempty"`
	Status             *string   `json:"status,omitempty"`
	ImageURLs          *[]string `json:"image_urls,omitempty"`
	EstimatedDelivery  *string   `json:"estimated_delivery,omitempty"`
	CreatedAt          *string   `json:"created_at,omitempty"`
}

type CreateEventRequest struct {
	Status      string `json:"status"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
	Latitude    string `json:"latitude,omitempty"`
	Longitude   string `json:"longitude,omitempty"`
}

type UpdateEventRequest struct {
	Status      *string `json:"status,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	Timestamp   *string `json:"timestamp,omitempty"`
	Latitude    *string `json:"latitude,omitempty"`
	Longitude   *string `json:"longitude,omitempty"`
}

// PostMessageRequest carries an optional client-declared sender which the
// server ignores: the stored sender is always derived from the principal.
type PostMessageRequest struct {
	Content string `json:"content"`
	Sender  string `json:"sender,omitempty"`
}

type CreateAdminRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}
