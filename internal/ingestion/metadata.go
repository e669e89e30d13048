package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Metadata describes one ingested job posting. ID names the artifact files
// when the posting is written to disk; Hash fingerprints the cleaned text so
// re-ingesting an unchanged posting is detectable. Title through Seniority
// are only set when LLM enrichment ran.
type Metadata struct {
	ID        string `json:"id"`
	URL       string `json:"url,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Platform  string `json:"platform,omitempty"`
	Title     string `json:"title,omitempty"`
	Company   string `json:"company,omitempty"`
	Location  string `json:"location,omitempty"`
	Seniority string `json:"seniority,omitempty"`
}

// NewMetadata stamps a fresh Metadata for the given cleaned text.
func NewMetadata(content string, url string) *Metadata {
	return &Metadata{
		ID:        uuid.NewString(),
		URL:       url,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals the metadata as indented JSON.
func (m *Metadata) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return data, nil
}
