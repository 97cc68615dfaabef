package domain

import (
	"time"

	"github.com/google/uuid"
)

type MessageSender string

const (
	SenderClient MessageSender = "CLIENT"
	SenderAdmin  MessageSender = "ADMIN"
)

type Message struct {
	MessageID  string        `json:"message_id"`
	ShipmentID string        `json:"shipment_id"`
	Sender     MessageSender `json:"sender"`
	Content    string        `json:"content"`
	IsRead     bool          `json:"is_read"`
	CreatedAt  time.Time     `json:"created_at"`
}

func NewMessageID() string { return "msg_" + uuid.NewString() }
