package domain

import (
	"encoding/json"
	"fmt"
)

// ChangedFile is the subset of a compare-service file entry that is sent to the model.
type ChangedFile struct {
	Filename         string `json:"filename"`
	Status           string `json:"status,omitempty"`
	PreviousFilename string `json:"previous_filename,omitempty"`
	Additions        int    `json:"additions,omitempty"`
	Deletions        int    `json:"deletions,omitempty"`
	Changes          int    `json:"changes,omitempty"`
	Patch            string `json:"patch,omitempty"`
}

// DiffResult holds the changed files between two refs.
type DiffResult struct {
	Files []ChangedFile
}

// JSON serializes the file list for the prompt.
func (d *DiffResult) JSON() (string, error) {
	files := d.Files
	if files == nil {
		files = []ChangedFile{}
	}
	data, err := json.Marshal(files)
	if err != nil {
		return "", fmt.Errorf("failed to serialize diff files: %w", err)
	}
	return string(data), nil
}
