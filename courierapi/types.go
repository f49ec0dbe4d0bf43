package courierapi

import (
	"encoding/json"
	"time"
)

// envelope is the response wrapper used by every courier API endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// AuthUser is the identity payload returned by the login endpoint.
type AuthUser struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Usertype string  `json:"usertype"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// AuthResponse is the data payload of a successful credential exchange.
type AuthResponse struct {
	User        AuthUser `json:"user"`
	AccessToken string   `json:"access_token"`
}

type RegisterRequest struct {
	Username             string `json:"username"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Usertype             string `json:"usertype"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ShipmentStatus values owned by the remote API.
const (
	StatusPending        = "pending"
	StatusInTransit      = "in_transit"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

// ShipmentStatuses lists every status the remote API accepts, in
// progression order.
var ShipmentStatuses = []string{
	StatusPending,
	StatusInTransit,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

type Shipment struct {
	ID                string     `json:"id"`
	TrackingNumber    string     `json:"trackingNumber"`
	SenderName        string     `json:"senderName"`
	SenderAddress     string     `json:"senderAddress"`
	SenderCity        string     `json:"senderCity"`
	SenderZipCode     string     `json:"senderZipCode"`
	SenderCountry     string     `json:"senderCountry"`
	ReceiverName      string     `json:"receiverName"`
	ReceiverAddress   string     `json:"receiverAddress"`
	ReceiverCity      string     `json:"receiverCity"`
	ReceiverZipCode   string     `json:"receiverZipCode"`
	ReceiverCountry   string     `json:"receiverCountry"`
	PackageWeight     float64    `json:"packageWeight"`
	PackageType       string     `json:"packageType"`
	Description       *string    `json:"description,omitempty"`
	Status            string     `json:"status"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	UserID            string     `json:"userId"`
	User              *struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user,omitempty"`
}

type CreateShipmentRequest struct {
	SenderName        string  `json:"senderName"`
	SenderAddress     string  `json:"senderAddress"`
	SenderCity        string  `json:"senderCity"`
	SenderZipCode     string  `json:"senderZipCode"`
	SenderCountry     string  `json:"senderCountry"`
	ReceiverName      string  `json:"receiverName"`
	ReceiverAddress   string  `json:"receiverAddress"`
	ReceiverCity      string  `json:"receiverCity"`
	ReceiverZipCode   string  `json:"receiverZipCode"`
	ReceiverCountry   string  `json:"receiverCountry"`
	PackageWeight     float64 `json:"packageWeight"`
	PackageType       string  `json:"packageType"`
	Description       string  `json:"description,omitempty"`
	EstimatedDelivery string  `json:"estimatedDelivery,omitempty"`
}

type ShipmentStats struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	InTransit      int `json:"inTransit"`
	OutForDelivery int `json:"outForDelivery"`
	Delivered      int `json:"delivered"`
	Cancelled      int `json:"cancelled"`
}

type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Usertype  string `json:"usertype"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type UpdateProfileRequest struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
