// Package customerrepo provides data transfer objects and mapping functions
// for customer persistence. The order history is stored as a jsonb array of
// order identifiers in placement order.
package customerrepo

import (
	"encoding/json"
	"time"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CustomerDTO represents the database structure for persisting customer aggregates.
type CustomerDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name         string         `gorm:"type:varchar(255);not null"`
	Email        string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone        string         `gorm:"type:varchar(32);not null"`
	OrderHistory datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time
}

// TableName specifies the database table name for customer entities.
func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(aggregate *customer.Customer) (CustomerDTO, error) {
	history := make([]string, 0, len(aggregate.OrderHistory()))
	for _, id := range aggregate.OrderHistory() {
		history = append(history, id.String())
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return CustomerDTO{}, err
	}

	return CustomerDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Email:        aggregate.Email(),
		Phone:        aggregate.Phone(),
		OrderHistory: historyJSON,
		CreatedAt:    aggregate.CreatedAt(),
	}, nil
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var rawHistory []string
	if err := json.Unmarshal(dto.OrderHistory, &rawHistory); err != nil {
		return nil, err
	}
	history := make([]kernel.UUID, 0, len(rawHistory))
	for _, raw := range rawHistory {
		orderID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		history = append(history, orderID)
	}

	return customer.RestoreCustomer(id, dto.Name, dto.Email, dto.Phone, history, dto.CreatedAt)
}
