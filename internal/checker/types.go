// Package checker wires the similarity engine to the result cache and the
// report store, and defines the request, response and Kafka message types
// shared by the HTTP service, the job worker and the CLI.
package checker

import "time"

// Sources label where a comparison was requested from.
const (
	SourceCLI    = "cli"
	SourceHTTP   = "http"
	SourceBatch  = "batch"
	SourceWorker = "worker"
)

// CompareRequest is the JSON body accepted by the compare endpoint.
type CompareRequest struct {
	Original  string `json:"original"`
	Candidate string `json:"candidate"`
}

// CompareResponse is returned for one scored pair.
type CompareResponse struct {
	ID             string  `json:"id,omitempty"`
	Score          float64 `json:"score"`
	Rounded        float64 `json:"rounded"`
	Display        string  `json:"display"`
	VocabularySize int     `json:"vocabulary_size"`
	Cached         bool    `json:"cached"`
}

// BatchCompareRequest carries many independent pairs.
type BatchCompareRequest struct {
	Pairs []CompareRequest `json:"pairs"`
}

// BatchItem is the outcome of one pair in a batch. Error is set instead of
// the response fields when that pair failed.
type BatchItem struct {
	Index int `json:"index"`
	*CompareResponse
	Error string `json:"error,omitempty"`
}

// BatchCompareResponse lists results in request order.
type BatchCompareResponse struct {
	Results []BatchItem `json:"results"`
}

// CompareJob is the Kafka message payload consumed by the worker.
type CompareJob struct {
	JobID       string    `json:"job_id"`
	Original    string    `json:"original"`
	Candidate   string    `json:"candidate"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// CompareResult is published once a job finishes, successfully or not.
type CompareResult struct {
	JobID       string    `json:"job_id"`
	ReportID    string    `json:"report_id,omitempty"`
	Score       float64   `json:"score"`
	Rounded     float64   `json:"rounded"`
	Display     string    `json:"display,omitempty"`
	Error       string    `json:"error,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}
