package models

import (
	"encoding/json"
	"time"
)

// SearchRecord represents one executed search.
// Collection/table: searches
type SearchRecord struct {
	ID          string    `bson:"_id" json:"id"`
	Brief       string    `bson:"brief" json:"brief"`
	QueryPlan   string    `bson:"query_plan" json:"-"`
	Providers   []string  `bson:"providers" json:"providers"`
	ResultCount int       `bson:"result_count" json:"result_count"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Plan decodes the serialized query plan stored on the record.
func (s SearchRecord) Plan() (QueryPlan, error) {
	var p QueryPlan
	if s.QueryPlan == "" {
		return p, nil
	}
	err := json.Unmarshal([]byte(s.QueryPlan), &p)
	return p, err
}
