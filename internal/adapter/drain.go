package adapter

import (
	"context"

	"github.com/MKhiriev/go-notes-sync/models"
)

// Drain runs sync round trips until the server reports no further pages.
// req.Items are uploaded with the first request only. The returned response
// accumulates the retrieved items of every page and carries the last cursor.
func Drain(ctx context.Context, client SyncClient, req models.SyncRequest) (models.SyncResponse, error) {
	resp, err := client.Sync(ctx, req)
	if err != nil {
		return models.SyncResponse{}, err
	}

	for resp.HasMore {
		page, err := client.Sync(ctx, models.SyncRequest{SyncToken: resp.SyncToken, Limit: req.Limit})
		if err != nil {
			return resp, err
		}

		resp.RetrievedItems = append(resp.RetrievedItems, page.RetrievedItems...)
		resp.SyncToken = page.SyncToken
		resp.HasMore = page.HasMore
	}

	return resp, nil
}
