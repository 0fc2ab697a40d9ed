// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Item is the unit of synchronization: an opaque encrypted note blob owned by
// one account. The server never inspects Content or EncItemKey.
type Item struct {
	// Sequence is the server-internal change counter. It is assigned on
	// insert and on every accepted update and is never sent to clients.
	Sequence int64 `json:"-"`

	// Owner is the account the item belongs to. Immutable after creation.
	Owner int64 `json:"-"`

	// UUID is the client-assigned identity, unique per owner.
	UUID string `json:"uuid"`

	// Content is the encrypted payload. Cleared when the item is deleted.
	Content string `json:"content"`

	// ContentType is the declared type of the payload (e.g. "Note").
	ContentType string `json:"content_type"`

	// EncItemKey is the wrapped per-item key. Cleared when the item is deleted.
	EncItemKey string `json:"enc_item_key"`

	// Deleted marks a tombstone. Tombstones are never physically removed.
	Deleted bool `json:"deleted"`

	// CreatedAt is set once at first insertion.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is stamped by the server at every accepted write and serves
	// as the optimistic-concurrency witness.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table associated with Item.
func (i Item) TableName() string {
	return "items"
}

// ItemSubmission is a client-submitted item version.
//
// UpdatedAt is the server timestamp of the version the client last saw for
// this uuid. It is nil for items the client believes are new.
type ItemSubmission struct {
	UUID        string     `json:"uuid"`
	Content     string     `json:"content"`
	ContentType string     `json:"content_type"`
	EncItemKey  string     `json:"enc_item_key"`
	Deleted     bool       `json:"deleted"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ToItem builds the stored representation of the submission for owner.
// Timestamps and sequence are left for the caller to stamp.
func (s ItemSubmission) ToItem(owner int64) Item {
	item := Item{
		Owner:       owner,
		UUID:        s.UUID,
		Content:     s.Content,
		ContentType: s.ContentType,
		EncItemKey:  s.EncItemKey,
		Deleted:     s.Deleted,
	}

	if item.Deleted {
		item.Content = ""
		item.EncItemKey = ""
	}

	return item
}
