package model

import "github.com/google/uuid"

// GenerateID creates an id for records whose source carries none.
func GenerateID() string {
	return uuid.New().String()
}
