package postgres

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

func toShipmentModel(s domain.Shipment) shipmentModel {
	return shipmentModel{
		ShipmentID:         s.ShipmentID,
		TrackingNumber:     s.TrackingNumber,
		Status:             string(s.Status),
		Origin:             s.Origin,
		Destination:        s.Destination,
		SenderInfo:         s.SenderInfo,
		ReceiverInfo:       s.ReceiverInfo,
		CustomerEmail:      s.CustomerEmail,
		ProductDescription: s.ProductDescription,
		ImageURLs:          encodeImageURLs(s.ImageURLs),
		EstimatedDelivery:  s.EstimatedDelivery,
		AdminID:            s.AdminID,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func toDomainShipment(row shipmentModel) domain.Shipment {
	return domain.Shipment{
		ShipmentID:         row.ShipmentID,
		TrackingNumber:     row.TrackingNumber,
		Status:             domain.ShipmentStatus(row.Status),
		Origin:             row.Origin,
		Destination:        row.Destination,
		SenderInfo:         row.SenderInfo,
		ReceiverInfo:       row.ReceiverInfo,
		CustomerEmail:      row.CustomerEmail,
		ProductDescription: row.ProductDescription,
		ImageURLs:          decodeImageURLs(row.ImageURLs),
		EstimatedDelivery:  row.EstimatedDelivery,
		AdminID:            row.AdminID,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

func toEventModel(e domain.ShipmentEvent) shipmentEventModel {
	return shipmentEventModel{
		EventID:     e.EventID,
		ShipmentID:  e.ShipmentID,
		Status:      string(e.Status),
		Location:    e.Location,
		Description: e.Description,
		Timestamp:   e.Timestamp,
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		CreatedAt:   e.CreatedAt,
	}
}

func toDomainEvent(row shipmentEventModel) domain.ShipmentEvent {
	return domain.ShipmentEvent{
		EventID:     row.EventID,
		ShipmentID:  row.ShipmentID,
		Status:      domain.ShipmentStatus(row.Status),
		Location:    row.Location,
		Description: row.Description,
		Timestamp:   row.Timestamp,
		Latitude:    row.Latitude,
		Longitude:   row.Longitude,
		CreatedAt:   row.CreatedAt,
	}
}

func toMessageModel(m domain.Message) messageModel {
	return messageModel{
		MessageID:  m.MessageID,
		ShipmentID: m.ShipmentID,
		Sender:     string(m.Sender),
		Content:    m.Content,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}

func toDomainMessage(row messageModel) domain.Message {
	return domain.Message{
		MessageID:  row.MessageID,
		ShipmentID: row.ShipmentID,
		Sender:     domain.MessageSender(row.Sender),
		Content:    row.Content,
		IsRead:     row.IsRead,
		CreatedAt:  row.CreatedAt,
	}
}

func toDomainAdmin(row adminModel) domain.Admin {
	return domain.Admin{
		AdminID:      row.AdminID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		Role:         domain.AdminRole(row.Role),
		CreatedAt:    row.CreatedAt,
	}
}

func toOutboxModel(rec ports.OutboxRecord) outboxModel {
	payload := string(rec.Payload)
	if payload == "" {
		payload = "{}"
	}
	return outboxModel{
		OutboxID:     rec.OutboxID,
		EventType:    rec.EventType,
		PartitionKey: rec.PartitionKey,
		Payload:      payload,
		CreatedAt:    rec.CreatedAt,
	}
}

// encodeImageURLs stores the sequence as a JSON array so order survives
// the round trip.
func encodeImageURLs(urls []string) string {
	if len(urls) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeImageURLs(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var urls []string
	if err := json.Unmarshal([]byte(raw), &urls); err != nil || urls == nil {
		return []string{}
	}
	return urls
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
