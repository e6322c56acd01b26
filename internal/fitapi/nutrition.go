package fitapi

import (
	"context"
	"net/url"
	"strconv"
)

// ListNutrition fetches the user's nutrition logs for the trailing number of
// days. A days value of 0 uses the upstream default window.
func (c *Client) ListNutrition(ctx context.Context, days int) ([]NutritionLog, error) {
	var query url.Values
	if days > 0 {
		query = url.Values{"days": []string{strconv.Itoa(days)}}
	}

	var logs []NutritionLog
	if err := c.get(ctx, ResourceNutrition, "/nutrition", query, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// CreateNutritionLog creates a nutrition log and returns the stored entity.
func (c *Client) CreateNutritionLog(ctx context.Context, create NutritionLogCreate) (*NutritionLog, error) {
	var log NutritionLog
	if err := c.postJSON(ctx, ResourceNutrition, "/nutrition", true, create, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// DeleteNutritionLog deletes a nutrition log by id.
func (c *Client) DeleteNutritionLog(ctx context.Context, id string) error {
	return c.delete(ctx, ResourceNutrition, "/nutrition/"+id)
}

// DailySummary fetches the server-computed nutrition aggregate for one day.
// A nil date means today. The summary is always taken from the server rather
// than recomputed locally so card totals cannot drift from list contents.
func (c *Client) DailySummary(ctx context.Context, date *Date) (*DailySummary, error) {
	var query url.Values
	if date != nil {
		query = url.Values{"date": []string{date.Format("2006-01-02")}}
	}

	var summary DailySummary
	if err := c.get(ctx, ResourceNutrition, "/nutrition/daily-summary", query, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
