package seranking

import (
	"context"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel/codes"
)

const dateLayout = "2006-01-02"

type StatOptions struct {
	// DateStart in YYYY-MM-DD form; defaults to seven days ago.
	DateStart string
	// DateEnd in YYYY-MM-DD form; defaults to today.
	DateEnd string
	// SearchEngines restricts the result to these engine selectors. Empty
	// means every engine of the site.
	SearchEngines []string
}

// Stat returns ranking statistics for a site, grouped per search engine.
func (c *Client) Stat(ctx context.Context, siteID int64, opts StatOptions) ([]EngineStat, error) {
	ctx, span := tracer.Start(ctx, "client:Stat")
	defer span.End()

	start := opts.DateStart
	if start == "" {
		start = c.now().AddDate(0, 0, -7).Format(dateLayout)
	}
	end := opts.DateEnd
	if end == "" {
		end = c.now().Format(dateLayout)
	}

	// the api pairs dateStart with endDate, not dateEnd
	p := params{
		"siteid":    strconv.FormatInt(siteID, 10),
		"dateStart": start,
		"endDate":   end,
	}
	var extra url.Values
	if len(opts.SearchEngines) > 0 {
		extra = url.Values{"SE[]": opts.SearchEngines}
	}

	var stats []EngineStat
	err := c.get(ctx, "stat", p, extra, &stats)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, err
	}
	return stats, nil
}
