package seranking

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"

	"seranking/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/encoding/charmap"
)

const yandexRegionsURL = "https://yandex.ru/yaca/geo.c2n"

// YandexRegions fetches the yandex geo region file from its third-party
// source, converts it from windows-1251 to utf-8 and overwrites the
// cached snapshot unconditionally. The source has historically served a
// certificate chain that fails verification, so verification is disabled
// for this one endpoint.
func (c *Client) YandexRegions(ctx context.Context) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "client:YandexRegions")
	defer span.End()

	res, err := c.geoClient().R().
		SetContext(ctx).
		Get(c.geoURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "geo fetch failed")
		return nil, fmt.Errorf("yandexRegions: %w", err)
	}
	if !res.IsSuccess() {
		apiErr := &APIError{Method: "yandexRegions", StatusCode: res.StatusCode()}
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, "geo fetch rejected")
		return nil, apiErr
	}

	data, err := charmap.Windows1251.NewDecoder().Bytes(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "charset conversion failed")
		return nil, fmt.Errorf("yandexRegions: convert to utf-8: %w", err)
	}

	err = c.cache.Put(ctx, geoKey, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to store snapshot")
		return nil, err
	}
	return data, nil
}

func (c *Client) geoClient() *resty.Client {
	if c.geo != nil {
		return c.geo
	}

	client := resty.New()
	client.SetTransport(&http.Transport{
		DialContext:     (&net.Dialer{Timeout: connectTimeout}).DialContext,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	})
	client.SetTimeout(totalTimeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))
	telemetry.InstrumentResty(client, "seranking/geo")

	c.geo = client
	return c.geo
}
