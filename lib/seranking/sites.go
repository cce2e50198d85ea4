package seranking

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// siteConfigKeys is the full set of parameters addSite accepts; anything
// else is dropped before submission.
var siteConfigKeys = []string{
	"url",
	"title",
	"depth",
	"subdomain_match",
	"exact_url",
	"manual_check_freq",
	"auto_reports",
	"group_id",
	"day_of_week",
}

// Sites returns every site registered on the account.
func (c *Client) Sites(ctx context.Context) ([]Site, error) {
	ctx, span := tracer.Start(ctx, "client:Sites")
	defer span.End()

	var sites []Site
	err := c.get(ctx, "sites", nil, nil, &sites)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, err
	}
	return sites, nil
}

// AddSite registers a site and returns its id. Unknown config keys are
// silently dropped, only the documented addSite parameters are sent.
func (c *Client) AddSite(ctx context.Context, config map[string]any) (int64, error) {
	ctx, span := tracer.Start(ctx, "client:AddSite")
	defer span.End()

	filtered := make(map[string]any, len(config))
	for _, key := range siteConfigKeys {
		if value, ok := config[key]; ok {
			filtered[key] = value
		}
	}

	var result struct {
		SiteID FlexInt `json:"siteid"`
	}
	err := c.post(ctx, "addSite", filtered, &result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return 0, err
	}
	return result.SiteID.Int64(), nil
}

// DeleteSite removes a site. The result is true exactly when the remote
// reports status 1. Deleting an already removed site surfaces the api
// error untouched so compensating callers can decide for themselves.
func (c *Client) DeleteSite(ctx context.Context, siteID int64) (bool, error) {
	ctx, span := tracer.Start(ctx, "client:DeleteSite")
	defer span.End()

	var result struct {
		Status FlexInt `json:"status"`
	}
	err := c.post(ctx, "deleteSite", map[string]any{"siteid": siteID}, &result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return false, err
	}
	return result.Status == 1, nil
}

// UpdateSiteSearchEngines replaces the search engine bindings of a site.
// Keys are engine selectors ("411" or "411~213" for yandex regions),
// values are region names used by google engines; an empty region name is
// sent as absent.
func (c *Client) UpdateSiteSearchEngines(ctx context.Context, siteID int64, engines map[string]string) (bool, error) {
	ctx, span := tracer.Start(ctx, "client:UpdateSiteSearchEngines")
	defer span.End()

	se := make(map[string]any, len(engines))
	for selector, region := range engines {
		if region == "" {
			se[selector] = nil
			continue
		}
		se[selector] = region
	}
	return c.updateSiteSE(ctx, span, siteID, se)
}

// ClearSiteSearchEngines removes every engine binding from a site.
func (c *Client) ClearSiteSearchEngines(ctx context.Context, siteID int64) (bool, error) {
	ctx, span := tracer.Start(ctx, "client:ClearSiteSearchEngines")
	defer span.End()

	// the api treats this sentinel list as "drop all bindings"
	return c.updateSiteSE(ctx, span, siteID, []string{"0"})
}

func (c *Client) updateSiteSE(ctx context.Context, span trace.Span, siteID int64, se any) (bool, error) {
	var result struct {
		Status FlexInt `json:"status"`
	}
	err := c.post(ctx, "updateSiteSE", map[string]any{"siteid": siteID, "se": se}, &result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return false, err
	}
	return result.Status == 1, nil
}
