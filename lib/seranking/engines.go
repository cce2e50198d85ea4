package seranking

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/codes"
)

// ParseEngineSelector splits an engine selector into its engine id and,
// for yandex engines, the region id. "411~213" yields ("411", "213"),
// "339" yields ("339", "").
func ParseEngineSelector(selector string) (engineID, regionID string) {
	engineID, regionID, _ = strings.Cut(selector, "~")
	return engineID, regionID
}

// SearchEngines returns the search engine directory keyed by engine id.
// The directory changes rarely, so it is served from the reference data
// cache and refreshed over the network at most once per refresh interval.
func (c *Client) SearchEngines(ctx context.Context) (map[string]SearchEngine, error) {
	ctx, span := tracer.Start(ctx, "client:SearchEngines")
	defer span.End()

	raw, err := c.cache.Get(ctx, enginesKey, c.refresh, func(ctx context.Context) ([]byte, error) {
		var list []SearchEngine
		err := c.get(ctx, "searchEngines", nil, nil, &list)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]SearchEngine, len(list))
		for _, engine := range list {
			byID[engine.ID.String()] = engine
		}
		return json.Marshal(byID)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, err
	}

	var engines map[string]SearchEngine
	err = json.Unmarshal(raw, &engines)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode cached directory")
		return nil, fmt.Errorf("searchEngines: decode cached directory: %w", err)
	}
	return engines, nil
}

// SearchVolumeRegions lists the regions usable for search volume lookups.
func (c *Client) SearchVolumeRegions(ctx context.Context) ([]VolumeRegion, error) {
	ctx, span := tracer.Start(ctx, "client:SearchVolumeRegions")
	defer span.End()

	var regions []VolumeRegion
	err := c.get(ctx, "searchVolumeRegions", nil, nil, &regions)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, err
	}
	return regions, nil
}

// KeySearchVolume returns the average search volume of a single keyword
// in a region.
func (c *Client) KeySearchVolume(ctx context.Context, regionID int64, keyword string) (int64, error) {
	ctx, span := tracer.Start(ctx, "client:KeySearchVolume")
	defer span.End()

	var result struct {
		Volume FlexInt `json:"volume"`
	}
	err := c.get(ctx, "keySearchVolume", params{
		"regionid": strconv.FormatInt(regionID, 10),
		"keyword":  keyword,
	}, nil, &result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return 0, err
	}
	return result.Volume.Int64(), nil
}

// KeySearchVolumeList would look up volumes for several keywords at once.
// The remote api offers no bulk call, so this fails fast instead of
// fanning out single lookups behind the caller's back.
func (c *Client) KeySearchVolumeList(ctx context.Context, regionID int64, keywords []string) (map[string]int64, error) {
	return nil, fmt.Errorf("%w: bulk search volume lookup", ErrUnsupported)
}
