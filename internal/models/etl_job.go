package models

import "time"

// ETLJobType enumerates background jobs triggered through the ETL endpoints.
type ETLJobType string

const (
	ETLJobSync   ETLJobType = "sync"
	ETLJobReport ETLJobType = "report"
)

// ReportFormat enumerates supported export formats.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// Valid reports whether the format is supported.
func (f ReportFormat) Valid() bool {
	return f == ReportFormatCSV || f == ReportFormatPDF
}

// ETLJobStatus captures background job lifecycle states.
type ETLJobStatus string

const (
	ETLStatusQueued     ETLJobStatus = "QUEUED"
	ETLStatusProcessing ETLJobStatus = "PROCESSING"
	ETLStatusFinished   ETLJobStatus = "FINISHED"
	ETLStatusFailed     ETLJobStatus = "FAILED"
)

// ETLJob is the tracked state of a queued job.
type ETLJob struct {
	ID           string       `json:"id"`
	Type         ETLJobType   `json:"type"`
	Format       ReportFormat `json:"format,omitempty"`
	Status       ETLJobStatus `json:"status"`
	Attempts     int          `json:"attempts"`
	ResultURL    *string      `json:"result_url,omitempty"`
	ErrorMessage *string      `json:"error_message,omitempty"`
	Summary      *ETLSummary  `json:"summary,omitempty"`
	CreatedBy    string       `json:"created_by"`
	CreatedAt    time.Time    `json:"created_at"`
	FinishedAt   *time.Time   `json:"finished_at,omitempty"`
}

// ETLSummary describes the outcome of a sync job.
type ETLSummary struct {
	Students       int    `json:"students"`
	Teachers       int    `json:"teachers"`
	Courses        int    `json:"courses"`
	DatasetVersion uint64 `json:"dataset_version"`
}
