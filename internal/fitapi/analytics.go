package fitapi

import (
	"context"
	"net/url"
	"strconv"
)

// Progress fetches the workout and nutrition progress aggregate for the
// trailing number of days.
func (c *Client) Progress(ctx context.Context, days int) (*Progress, error) {
	query := url.Values{"days": []string{strconv.Itoa(days)}}

	var progress Progress
	if err := c.get(ctx, ResourceAnalytics, "/analytics/progress", query, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// Trends fetches the trend analysis for one workout metric.
func (c *Client) Trends(ctx context.Context, metric string, days int) (*Trends, error) {
	query := url.Values{
		"metric": []string{metric},
		"days":   []string{strconv.Itoa(days)},
	}

	var trends Trends
	if err := c.get(ctx, ResourceAnalytics, "/analytics/trends", query, &trends); err != nil {
		return nil, err
	}
	return &trends, nil
}

// Statistics fetches the all-time account summary.
func (c *Client) Statistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics
	if err := c.get(ctx, ResourceAnalytics, "/analytics/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
