package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

// TxRunner runs fn inside one database transaction.
type TxRunner func(db *gorm.DB, fn func(tx *gorm.DB) error) error

// GormTx is the production TxRunner.
func GormTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.Transaction(fn)
}

// Clock is swapped in tests.
type Clock func() time.Time

func generateRandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
