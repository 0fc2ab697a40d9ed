// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-notes-sync/models"
)

var itemColumns = []string{
	"owner",
	"uuid",
	"content",
	"content_type",
	"enc_item_key",
	"deleted",
	"created_at",
	"updated_at",
	"sequence",
}

var userColumns = []string{
	"user_id",
	"uuid",
	"email",
	"password_hash",
	"pw_cost",
	"pw_nonce",
	"version",
	"created_at",
}

func buildGetItemQuery(d Dialect, owner int64, uuid string) (string, []any, error) {
	return d.builder().
		Select(itemColumns...).
		From(models.Item{}.TableName()).
		Where("owner = ?", owner).
		Where("uuid = ?", uuid).
		ToSql()
}

func buildInsertItemQuery(d Dialect, item models.Item) (string, []any, error) {
	return d.builder().
		Insert(models.Item{}.TableName()).
		Columns(itemColumns...).
		Values(
			item.Owner,
			item.UUID,
			item.Content,
			item.ContentType,
			item.EncItemKey,
			item.Deleted,
			item.CreatedAt,
			item.UpdatedAt,
			sq.Expr(d.nextSequence),
		).
		Suffix("RETURNING sequence").
		ToSql()
}

func buildUpdateItemQuery(d Dialect, item models.Item) (string, []any, error) {
	return d.builder().
		Update(models.Item{}.TableName()).
		Set("content", item.Content).
		Set("content_type", item.ContentType).
		Set("enc_item_key", item.EncItemKey).
		Set("deleted", item.Deleted).
		Set("updated_at", item.UpdatedAt).
		Set("sequence", sq.Expr(d.nextSequence)).
		Where("owner = ?", item.Owner).
		Where("uuid = ?", item.UUID).
		Suffix("RETURNING sequence").
		ToSql()
}

func buildScanAfterQuery(d Dialect, owner, after int64, limit int) (string, []any, error) {
	return d.builder().
		Select(itemColumns...).
		From(models.Item{}.TableName()).
		Where("owner = ?", owner).
		Where("sequence > ?", after).
		OrderBy("sequence ASC").
		Limit(uint64(limit)).
		ToSql()
}

func buildCreateUserQuery(d Dialect, user models.User) (string, []any, error) {
	return d.builder().
		Insert(models.User{}.TableName()).
		Columns(userColumns[1:]...).
		Values(
			user.UUID,
			user.Email,
			user.PasswordHash,
			user.PwCost,
			user.PwNonce,
			user.Version,
			user.CreatedAt,
		).
		Suffix("RETURNING user_id").
		ToSql()
}

func buildFindUserQuery(d Dialect, where sq.Eq) (string, []any, error) {
	return d.builder().
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		ToSql()
}

func buildUpdateCredentialsQuery(d Dialect, user models.User) (string, []any, error) {
	return d.builder().
		Update(models.User{}.TableName()).
		Set("password_hash", user.PasswordHash).
		Set("pw_cost", user.PwCost).
		Set("pw_nonce", user.PwNonce).
		Set("version", user.Version).
		Where("user_id = ?", user.UserID).
		ToSql()
}
