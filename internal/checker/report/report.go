// Package report defines the persisted outcome of a comparison and writes
// it as a result artifact, either to a file or to PostgreSQL.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/cosine"
)

// Report records one comparison. Document texts are identified by their
// SHA-256 content hash and never stored.
type Report struct {
	ID             uuid.UUID `json:"id"`
	OriginalHash   string    `json:"original_hash"`
	CandidateHash  string    `json:"candidate_hash"`
	Score          float64   `json:"score"`
	Rounded        float64   `json:"rounded"`
	VocabularySize int       `json:"vocabulary_size"`
	Tokenizer      string    `json:"tokenizer"`
	CreatedAt      time.Time `json:"created_at"`
}

// New builds a report for result with a fresh id.
func New(result similarity.Result, originalHash, candidateHash, tokenizer string) Report {
	return Report{
		ID:             uuid.New(),
		OriginalHash:   originalHash,
		CandidateHash:  candidateHash,
		Score:          result.Score,
		Rounded:        cosine.Round(result.Score),
		VocabularySize: result.VocabularySize,
		Tokenizer:      tokenizer,
		CreatedAt:      time.Now().UTC(),
	}
}

// Display renders the line written to the result artifact.
func (r Report) Display() string {
	return fmt.Sprintf("Similarity score: %s", cosine.Format(r.Score))
}

// ContentHash is the hex SHA-256 of text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
