package database

import (
	"encoding/json"
	"fmt"

	models "folio/internal/domain/models/database"
)

func decodeDatabase(raw []byte) (*models.DatabaseData, error) {
	var data models.DatabaseData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode database: %w", err)
	}
	return &data, nil
}

func encodeDatabase(data *models.DatabaseData) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode database: %w", err)
	}
	return raw, nil
}
