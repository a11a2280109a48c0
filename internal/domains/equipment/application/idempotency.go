package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	types "github.com/Apurer/equipment-lending-api/internal/domains/equipment/application/types"
)

type normalizedRegisterEquipment struct {
	Name *string `json:"name"`
}

// FingerprintRegisterEquipment hashes the registration payload, excluding the idempotency key.
func FingerprintRegisterEquipment(cmd types.RegisterEquipmentCommand) (string, error) {
	payload, err := json.Marshal(normalizedRegisterEquipment{Name: cmd.Name})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
