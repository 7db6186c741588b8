package model

import "time"

// RawRecord is one course record as decoded from a record file: a flat mapping
// from field code to value. Values are expected to be strings; decoders keep
// whatever they found so the pipeline can reject what it cannot use.
type RawRecord map[string]any

// RecordFile is the metadata of an uploaded course record file.
// It carries no persistence tags and is shared by the HTTP, service and storage layers.
type RecordFile struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CourseCode  string    `json:"course_code"`
	Program     string    `json:"program"`
	CreatedAt   time.Time `json:"created_at"`
}
