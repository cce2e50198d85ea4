package seranking

import (
	"context"
	"fmt"
	"strconv"

	"seranking/lib/textutil"

	"go.opentelemetry.io/otel/codes"
)

// SiteKeywords lists the keywords tracked for a site.
func (c *Client) SiteKeywords(ctx context.Context, siteID int64) ([]Keyword, error) {
	ctx, span := tracer.Start(ctx, "client:SiteKeywords")
	defer span.End()

	var keywords []Keyword
	err := c.get(ctx, "siteKeywords", params{
		"siteid": strconv.FormatInt(siteID, 10),
	}, nil, &keywords)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, err
	}
	return keywords, nil
}

// AddSiteKeywords attaches keywords to a site. A zero groupID leaves the
// service's default group in charge.
func (c *Client) AddSiteKeywords(ctx context.Context, siteID int64, keywords []string, groupID int64) (AddedKeywords, error) {
	ctx, span := tracer.Start(ctx, "client:AddSiteKeywords")
	defer span.End()

	payload := map[string]any{
		"siteid":   siteID,
		"keywords": keywords,
	}
	if groupID != 0 {
		payload["groupid"] = groupID
	}

	var result AddedKeywords
	err := c.post(ctx, "addSiteKeywords", payload, &result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return AddedKeywords{}, err
	}
	return result, nil
}

// AddSiteKeywordsExt attaches keywords with explicit target urls. Every
// keyword is normalized before submission; keywords that collapse to the
// same normalized form overwrite each other's target url silently. An
// empty map is rejected before any network traffic.
func (c *Client) AddSiteKeywordsExt(
	ctx context.Context,
	siteID int64,
	keywords map[string]string,
	groupID int64,
	strictTargetURLs bool,
) (AddedKeywords, error) {
	ctx, span := tracer.Start(ctx, "client:AddSiteKeywordsExt")
	defer span.End()

	if len(keywords) == 0 {
		err := fmt.Errorf("%w: keyword map is empty", ErrInvalidArgument)
		span.RecordError(err)
		span.SetStatus(codes.Error, "empty keyword map")
		return AddedKeywords{}, err
	}

	normalized := make(map[string]string, len(keywords))
	for keyword, targetURL := range keywords {
		normalized[textutil.NormalizeKeyword(keyword)] = targetURL
	}

	strict := 0
	if strictTargetURLs {
		strict = 1
	}
	payload := map[string]any{
		"siteid":                siteID,
		"keywords":              normalized,
		"is_strict_target_urls": strict,
	}
	if groupID != 0 {
		payload["groupid"] = groupID
	}

	var result AddedKeywords
	err := c.post(ctx, "addSiteKeywordsExt", payload, &result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return AddedKeywords{}, err
	}
	return result, nil
}

// DeleteKeywords removes keywords from a site by id. True exactly when
// the remote reports status 1.
func (c *Client) DeleteKeywords(ctx context.Context, siteID int64, keywordIDs []int64) (bool, error) {
	ctx, span := tracer.Start(ctx, "client:DeleteKeywords")
	defer span.End()

	var result struct {
		Status FlexInt `json:"status"`
	}
	err := c.post(ctx, "deleteKeywords", map[string]any{
		"siteid":       siteID,
		"keywords_ids": keywordIDs,
	}, &result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return false, err
	}
	return result.Status == 1, nil
}
