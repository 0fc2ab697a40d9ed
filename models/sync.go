// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConflictType tells the client why a submission was not saved.
type ConflictType string

const (
	// SyncConflict means the client's copy is stale: the stored item has
	// changed since the client last synchronized it.
	SyncConflict ConflictType = "sync_conflict"

	// InvalidItem means the submission was malformed and was skipped.
	InvalidItem ConflictType = "invalid_item"
)

// Conflict is a per-item outcome for a submission that was not saved.
// It is a normal result, not an error: the client is expected to re-merge
// and resubmit.
type Conflict struct {
	Type ConflictType `json:"type"`

	// ServerItem is the current stored version. Set for SyncConflict.
	ServerItem *Item `json:"server_item,omitempty"`

	// UnsavedItem echoes the rejected submission. Set for InvalidItem.
	UnsavedItem *ItemSubmission `json:"unsaved_item,omitempty"`

	// Error describes why an InvalidItem was rejected.
	Error string `json:"error,omitempty"`
}

// UUID returns the identity of the item the conflict refers to.
func (c Conflict) UUID() string {
	switch {
	case c.ServerItem != nil:
		return c.ServerItem.UUID
	case c.UnsavedItem != nil:
		return c.UnsavedItem.UUID
	default:
		return ""
	}
}

// SyncRequest is one synchronization round trip from a device.
type SyncRequest struct {
	// SyncToken is the cursor returned by the previous sync. Empty on the
	// very first sync, which starts from the beginning of history.
	SyncToken string `json:"sync_token,omitempty"`

	// Items are the local changes to upload, processed in order.
	Items []ItemSubmission `json:"items"`

	// Limit caps the number of retrieved items. Zero selects the server
	// maximum.
	Limit int `json:"limit,omitempty"`
}

// SyncResponse is the result of a synchronization round trip.
type SyncResponse struct {
	// RetrievedItems are items changed after the request's cursor, ascending
	// by change order. Includes the caller's own accepted writes.
	RetrievedItems []Item `json:"retrieved_items"`

	// SavedItems are the accepted submissions with server-stamped fields.
	SavedItems []Item `json:"saved_items"`

	// UnsavedItems are submissions that were rejected.
	UnsavedItems []Conflict `json:"unsaved_items"`

	// SyncToken is the cursor to send with the next request.
	SyncToken string `json:"sync_token"`

	// HasMore reports that further changes remain past this page.
	HasMore bool `json:"has_more"`
}
