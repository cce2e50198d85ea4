package seranking

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt decodes integers the api serializes inconsistently, sometimes
// as numbers and sometimes as quoted strings. Null and the empty string
// decode to zero.
type FlexInt int64

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*n = FlexInt(v)
	return nil
}

func (n FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(n), 10)), nil
}

func (n FlexInt) Int64() int64 { return int64(n) }

func (n FlexInt) String() string { return strconv.FormatInt(int64(n), 10) }

// FlexFloat is FlexInt for fractional values like average positions.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// SiteEngine is one search engine binding of a site.
type SiteEngine struct {
	SeID       FlexInt `json:"seID"`
	RegionID   FlexInt `json:"regionID"`
	RegionName string  `json:"regionName"`
}

// Site is a tracked property registered with the service. Raw preserves
// every field of the payload for values the client does not interpret.
type Site struct {
	ID                   FlexInt      `json:"id"`
	Name                 string       `json:"name"`
	Title                string       `json:"title"`
	TodayAvgPosition     FlexFloat    `json:"todayAvgPosition"`
	YesterdayAvgPosition FlexFloat    `json:"yesterdayAvgPosition"`
	TotalUp              FlexInt      `json:"totalUp"`
	TotalDown            FlexInt      `json:"totalDown"`
	KeysCount            FlexInt      `json:"keysCount"`
	Process              FlexInt      `json:"process"`
	Engines              []SiteEngine `json:"SEs"`
	GroupID              FlexInt      `json:"group_id"`

	Raw map[string]json.RawMessage `json:"-"`
}

func (s *Site) UnmarshalJSON(data []byte) error {
	type alias Site
	err := json.Unmarshal(data, (*alias)(s))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.Raw)
}

// Keyword is a tracked search query attached to a site.
type Keyword struct {
	ID             FlexInt `json:"id"`
	Name           string  `json:"name"`
	GroupID        FlexInt `json:"group_id"`
	Link           string  `json:"link"`
	FirstCheckDate string  `json:"first_check_date"`

	Raw map[string]json.RawMessage `json:"-"`
}

func (k *Keyword) UnmarshalJSON(data []byte) error {
	type alias Keyword
	err := json.Unmarshal(data, (*alias)(k))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &k.Raw)
}

// SearchEngine is one entry of the search engine directory. Regions stays
// raw, only yandex engines carry it and the client passes it through.
type SearchEngine struct {
	ID       FlexInt         `json:"id"`
	Name     string          `json:"name"`
	RegionID FlexInt         `json:"regionid"`
	Regions  json.RawMessage `json:"regions,omitempty"`
}

// VolumeRegion is a region usable for search volume lookups.
type VolumeRegion struct {
	ID   FlexInt `json:"id"`
	Name string  `json:"name"`
}

// Position is a ranking observation for one date.
type Position struct {
	Date   string  `json:"date"`
	Pos    FlexInt `json:"pos"`
	Change FlexInt `json:"change"`
}

// LandingPage records which url ranked on a date.
type LandingPage struct {
	URL  string `json:"url"`
	Date string `json:"date"`
}

// KeywordStat is the position history of one keyword.
type KeywordStat struct {
	ID           FlexInt       `json:"id"`
	Positions    []Position    `json:"positions"`
	LandingPages []LandingPage `json:"landing_pages"`
}

// EngineStat groups keyword statistics per site search engine.
type EngineStat struct {
	SeID     FlexInt       `json:"seID"`
	RegionID FlexInt       `json:"regionID"`
	Keywords []KeywordStat `json:"keywords"`
}

// AddedKeywords reports the outcome of a keyword addition.
type AddedKeywords struct {
	Added FlexInt   `json:"added"`
	IDs   []FlexInt `json:"ids"`
}
