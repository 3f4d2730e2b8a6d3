package configs

import (
	"encoding/base64"
	"fmt"

	"github.com/gorilla/securecookie"
)

// GenerateAndPrintTokenKey prints a fresh TOKEN_KEY value for the .env file.
// Regenerating invalidates nothing by itself; tokens live in the database.
func GenerateAndPrintTokenKey() error {
	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		return fmt.Errorf("could not generate token key")
	}

	fmt.Println("================================================")
	fmt.Printf("TOKEN_KEY=%s\n", base64.URLEncoding.EncodeToString(key))
	fmt.Println("================================================")
	fmt.Println("Copy this line into your .env file.")

	return nil
}

// NewTokenKey returns a random credential for an API token row.
func NewTokenKey() (string, error) {
	raw := securecookie.GenerateRandomKey(32)
	if raw == nil {
		return "", fmt.Errorf("could not generate token")
	}
	return fmt.Sprintf("%x", raw), nil
}
