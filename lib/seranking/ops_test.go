package seranking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddSiteFiltersConfig(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("addSite", func(w http.ResponseWriter, r *http.Request) {
		data := postData(t, r)
		require.Equal(t, "http://example.com", data["url"])
		require.Equal(t, "Example", data["title"])
		require.NotContains(t, data, "bogus_key")
		writeJSON(w, map[string]any{"siteid": 9001})
	})

	client, _ := setup(t, api)

	siteID, err := client.AddSite(context.Background(), map[string]any{
		"url":       "http://example.com",
		"title":     "Example",
		"bogus_key": "dropped silently",
	})
	require.NoError(t, err)
	require.Equal(t, int64(9001), siteID)
}

func TestDeleteSiteStatus(t *testing.T) {
	status := 1
	api := newFakeAPI(t)
	api.handle("deleteSite", func(w http.ResponseWriter, r *http.Request) {
		data := postData(t, r)
		require.EqualValues(t, 9001, data["siteid"])
		writeJSON(w, map[string]any{"status": status})
	})

	client, _ := setup(t, api)
	ctx := context.Background()

	ok, err := client.DeleteSite(ctx, 9001)
	require.NoError(t, err)
	require.True(t, ok)

	status = 0
	ok, err = client.DeleteSite(ctx, 9001)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDeleteSiteHTTPFailure(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("deleteSite", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client, _ := setup(t, api)

	_, err := client.DeleteSite(context.Background(), 9001)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestAddSiteKeywords(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("addSiteKeywords", func(w http.ResponseWriter, r *http.Request) {
		data := postData(t, r)
		require.EqualValues(t, 55, data["siteid"])
		require.Equal(t, []any{"ключ1", "ключ2"}, data["keywords"])
		require.EqualValues(t, 7, data["groupid"])
		writeJSON(w, map[string]any{"added": "2", "ids": []int{111, 112}})
	})

	client, _ := setup(t, api)

	result, err := client.AddSiteKeywords(context.Background(), 55, []string{"ключ1", "ключ2"}, 7)
	require.NoError(t, err)
	require.Equal(t, int64(2), result.Added.Int64())
	require.Len(t, result.IDs, 2)
	require.Equal(t, int64(111), result.IDs[0].Int64())
}

func TestAddSiteKeywordsDefaultGroup(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("addSiteKeywords", func(w http.ResponseWriter, r *http.Request) {
		data := postData(t, r)
		require.NotContains(t, data, "groupid")
		writeJSON(w, map[string]any{"added": 1, "ids": []int{5}})
	})

	client, _ := setup(t, api)

	_, err := client.AddSiteKeywords(context.Background(), 55, []string{"ключ"}, 0)
	require.NoError(t, err)
}

func TestAddSiteKeywordsExt(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("addSiteKeywordsExt", func(w http.ResponseWriter, r *http.Request) {
		data := postData(t, r)
		require.EqualValues(t, 55, data["siteid"])
		require.EqualValues(t, 1, data["is_strict_target_urls"])
		require.Equal(t, map[string]any{
			"окна пвх": "http://example.com/okna",
		}, data["keywords"])
		writeJSON(w, map[string]any{"added": 1, "ids": []int{77}})
	})

	client, _ := setup(t, api)

	result, err := client.AddSiteKeywordsExt(context.Background(), 55, map[string]string{
		"  Окна   ПВХ!!  ": "http://example.com/okna",
	}, 0, true)
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Added.Int64())
}

func TestAddSiteKeywordsExtEmptyMap(t *testing.T) {
	api := newFakeAPI(t)
	client, _ := setup(t, api)

	_, err := client.AddSiteKeywordsExt(context.Background(), 55, nil, 0, false)
	require.ErrorIs(t, err, ErrInvalidArgument)
	// rejected before any network traffic, including login
	require.Equal(t, 0, api.calls["login"])
	require.Equal(t, 0, api.calls["addSiteKeywordsExt"])
}

func TestDeleteKeywords(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("deleteKeywords", func(w http.ResponseWriter, r *http.Request) {
		data := postData(t, r)
		require.EqualValues(t, 55, data["siteid"])
		require.Equal(t, []any{float64(111), float64(112)}, data["keywords_ids"])
		writeJSON(w, map[string]any{"status": 1})
	})

	client, _ := setup(t, api)

	ok, err := client.DeleteKeywords(context.Background(), 55, []int64{111, 112})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUpdateSiteSearchEngines(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("updateSiteSE", func(w http.ResponseWriter, r *http.Request) {
		data := postData(t, r)
		require.EqualValues(t, 55, data["siteid"])
		require.Equal(t, map[string]any{
			"411~213": nil,
			"339":     "London",
		}, data["se"])
		writeJSON(w, map[string]any{"status": 1})
	})

	client, _ := setup(t, api)

	ok, err := client.UpdateSiteSearchEngines(context.Background(), 55, map[string]string{
		"411~213": "",
		"339":     "London",
	})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestClearSiteSearchEngines(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("updateSiteSE", func(w http.ResponseWriter, r *http.Request) {
		data := postData(t, r)
		require.Equal(t, []any{"0"}, data["se"])
		writeJSON(w, map[string]any{"status": 1})
	})

	client, _ := setup(t, api)

	ok, err := client.ClearSiteSearchEngines(context.Background(), 55)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStatDefaultDates(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)

	api := newFakeAPI(t)
	api.handle("stat", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "55", q.Get("siteid"))
		require.Equal(t, "2024-06-08", q.Get("dateStart"))
		require.Equal(t, "2024-06-15", q.Get("endDate"))
		require.Empty(t, q["SE[]"])
		writeJSON(w, []map[string]any{})
	})

	client, _ := setup(t, api, func(o *Options) {
		o.Clock = func() time.Time { return now }
	})

	_, err := client.Stat(context.Background(), 55, StatOptions{})
	require.NoError(t, err)
}

func TestStatExplicitRangeAndFilter(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("stat", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "2024-01-01", q.Get("dateStart"))
		require.Equal(t, "2024-01-31", q.Get("endDate"))
		require.Equal(t, []string{"411~213", "339"}, q["SE[]"])
		writeJSON(w, []map[string]any{
			{
				"seID":     "411",
				"regionID": "213",
				"keywords": []map[string]any{
					{
						"id": "4188",
						"positions": []map[string]any{
							{"date": "2024-01-02", "pos": "2", "change": 0},
							{"date": "2024-01-03", "pos": "4", "change": -1},
						},
						"landing_pages": []map[string]any{
							{"url": "http://mysite.com/", "date": "2024-01-02"},
						},
					},
				},
			},
		})
	})

	client, _ := setup(t, api)

	stats, err := client.Stat(context.Background(), 55, StatOptions{
		DateStart:     "2024-01-01",
		DateEnd:       "2024-01-31",
		SearchEngines: []string{"411~213", "339"},
	})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, int64(411), stats[0].SeID.Int64())
	require.Equal(t, int64(213), stats[0].RegionID.Int64())
	require.Len(t, stats[0].Keywords, 1)
	require.Equal(t, int64(-1), stats[0].Keywords[0].Positions[1].Change.Int64())
	require.Equal(t, "http://mysite.com/", stats[0].Keywords[0].LandingPages[0].URL)
}

func TestSearchEnginesCached(t *testing.T) {
	now := time.Unix(1700000000, 0)

	api := newFakeAPI(t)
	api.handle("searchEngines", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"id": "411", "name": "Yandex", "regionid": 13},
			{"id": 339, "name": "Google UK", "regionid": 44},
		})
	})

	client, _ := setup(t, api, func(o *Options) {
		o.Clock = func() time.Time { return now }
	})
	ctx := context.Background()

	engines, err := client.SearchEngines(ctx)
	require.NoError(t, err)
	require.Len(t, engines, 2)
	require.Equal(t, "Yandex", engines["411"].Name)
	require.Equal(t, int64(44), engines["339"].RegionID.Int64())
	require.Equal(t, 1, api.calls["searchEngines"])

	// a fresh directory is served from the cache
	engines, err = client.SearchEngines(ctx)
	require.NoError(t, err)
	require.Len(t, engines, 2)
	require.Equal(t, 1, api.calls["searchEngines"])

	// past the refresh interval the directory is fetched again
	now = now.Add(DefaultRefreshInterval + time.Second)
	_, err = client.SearchEngines(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, api.calls["searchEngines"])
}

func TestSearchVolumeRegions(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("searchVolumeRegions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"id": "1", "name": "Afghanistan"},
			{"id": "2", "name": "Algeria"},
		})
	})

	client, _ := setup(t, api)

	regions, err := client.SearchVolumeRegions(context.Background())
	require.NoError(t, err)
	require.Len(t, regions, 2)
	require.Equal(t, "Algeria", regions[1].Name)
}

func TestKeySearchVolume(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("keySearchVolume", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "13", q.Get("regionid"))
		require.Equal(t, "окна пвх", q.Get("keyword"))
		writeJSON(w, map[string]any{"volume": 123500})
	})

	client, _ := setup(t, api)

	volume, err := client.KeySearchVolume(context.Background(), 13, "окна пвх")
	require.NoError(t, err)
	require.Equal(t, int64(123500), volume)
}

func TestKeySearchVolumeListUnsupported(t *testing.T) {
	api := newFakeAPI(t)
	client, _ := setup(t, api)

	_, err := client.KeySearchVolumeList(context.Background(), 13, []string{"a", "b"})
	require.ErrorIs(t, err, ErrUnsupported)
	require.Equal(t, 0, api.calls["keySearchVolume"])
}

func TestYandexRegions(t *testing.T) {
	// "Москва" encoded as windows-1251
	cp1251 := []byte{0xCC, 0xEE, 0xF1, 0xEA, 0xE2, 0xE0}

	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(cp1251)
	}))
	t.Cleanup(geo.Close)

	api := newFakeAPI(t)
	client, store := setup(t, api, func(o *Options) {
		o.GeoURL = geo.URL
	})
	ctx := context.Background()

	data, err := client.YandexRegions(ctx)
	require.NoError(t, err)
	require.Equal(t, "Москва", string(data))

	// the snapshot lands in the cache unconditionally
	raw, ok, err := store.Get(ctx, "ya.geo")
	require.NoError(t, err)
	require.True(t, ok)
	var entry struct {
		Value []byte `json:"value"`
	}
	require.NoError(t, json.Unmarshal(raw, &entry))
	require.Equal(t, "Москва", string(entry.Value))
}

func TestParseEngineSelector(t *testing.T) {
	engineID, regionID := ParseEngineSelector("411~213")
	require.Equal(t, "411", engineID)
	require.Equal(t, "213", regionID)

	engineID, regionID = ParseEngineSelector("339")
	require.Equal(t, "339", engineID)
	require.Empty(t, regionID)
}
