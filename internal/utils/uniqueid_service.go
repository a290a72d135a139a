package utils

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity ID prefixes. Every row we create carries one of these so an ID is
// self-describing in logs and broadcast payloads.
const (
	PrefixList       = "TL"
	PrefixTask       = "TK"
	PrefixSubTask    = "ST"
	PrefixComment    = "CM"
	PrefixCollab     = "CO"
	PrefixMessage    = "DM"
	PrefixUser       = "US"
	PrefixOptimistic = "tmp"
)

// UniqueIDService generates entity identifiers.
type UniqueIDService struct{}

// NewUniqueIDService creates a new UniqueIDService.
func NewUniqueIDService() *UniqueIDService {
	return &UniqueIDService{}
}

// GenerateID creates an ID from a two-letter prefix followed by eleven
// random alphanumerics, uppercased. Example with prefix TK: TK4F8A1B2C9D0.
func (s *UniqueIDService) GenerateID(prefix string) (string, error) {
	alnum := "0123456789abcdefghijklmnopqrstuvwxyz"

	body, err := gonanoid.Generate(alnum, 11)
	if err != nil {
		return "", fmt.Errorf("failed to generate id body: %w", err)
	}

	return strings.ToUpper(prefix + body), nil
}

// GenerateTempID creates a lowercase client-local identifier for optimistic
// entries, distinguishable from server IDs by its tmp- prefix.
func (s *UniqueIDService) GenerateTempID() (string, error) {
	alnum := "0123456789abcdefghijklmnopqrstuvwxyz"

	body, err := gonanoid.Generate(alnum, 11)
	if err != nil {
		return "", fmt.Errorf("failed to generate temp id: %w", err)
	}

	return PrefixOptimistic + "-" + body, nil
}

// UniqueIDSvc is the shared instance.
var UniqueIDSvc = NewUniqueIDService()

// GenerateUniqueID generates an ID using the shared instance. The
// alphabet and size are fixed and valid, so generation cannot fail.
func GenerateUniqueID(prefix string) string {
	id, err := UniqueIDSvc.GenerateID(prefix)
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateTempID generates an optimistic-entry ID using the shared
// instance.
func GenerateTempID() string {
	id, err := UniqueIDSvc.GenerateTempID()
	if err != nil {
		panic(err)
	}
	return id
}
