package model

import (
	"encoding/json"
	"time"
)

type Document struct {
	ID                  string          `json:"id" db:"id"`
	UserID              string          `json:"user_id" db:"user_id"`
	DocumentType        string          `json:"document_type" db:"document_type"`
	FileName            string          `json:"file_name" db:"file_name"`
	FileData            string          `json:"file_data,omitempty" db:"file_data"`
	VerificationStatus  string          `json:"verification_status" db:"verification_status"`
	VerificationDetails json.RawMessage `json:"verification_details,omitempty" db:"verification_details"`
	UploadedAt          time.Time       `json:"uploaded_at" db:"uploaded_at"`
}
