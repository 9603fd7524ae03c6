package rates

import (
	"encoding/json"
	"time"
)

// latestResponse is the JSON body served for /latest/{base}. Both the
// "base" and "base_code" spellings are accepted.
type latestResponse struct {
	Result   string                     `json:"result,omitempty"`
	Base     string                     `json:"base,omitempty"`
	BaseCode string                     `json:"base_code,omitempty"`
	Date     string                     `json:"date,omitempty"`
	Updated  int64                      `json:"time_last_update_unix,omitempty"`
	Rates    map[string]json.RawMessage `json:"rates"`
}

// Quote is one fetched base to secondary rate.
type Quote struct {
	Base      string    `json:"base" yaml:"base"`
	Secondary string    `json:"secondary" yaml:"secondary"`
	Rate      float64   `json:"rate" yaml:"rate"`
	AsOf      time.Time `json:"as_of,omitempty" yaml:"as_of,omitempty"`
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}
