package models

import "time"

// PriceSnapshot records one priced row from a batch run for historical
// tracking. Rows are upserted per (run, name, set, condition, finish) so
// re-running a batch within the same run ID stays idempotent.
type PriceSnapshot struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RunID     string    `json:"run_id" gorm:"not null;index;uniqueIndex:idx_run_row"`
	CardUUID  string    `json:"card_uuid" gorm:"index"`
	Name      string    `json:"name" gorm:"not null;index;uniqueIndex:idx_run_row"`
	SetCode   string    `json:"set_code" gorm:"uniqueIndex:idx_run_row"`
	Condition string    `json:"condition" gorm:"uniqueIndex:idx_run_row"`
	Foil      bool      `json:"foil" gorm:"uniqueIndex:idx_run_row"`
	PriceUSD  float64   `json:"price_usd"`
	PriceCLP  int       `json:"price_clp"`
	Source    string    `json:"source"`
	Reliable  bool      `json:"reliable"`
	CreatedAt time.Time `json:"created_at"`
}
