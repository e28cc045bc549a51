package postgres

import "time"

type playerRecordModel struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	NameNormalized string    `db:"name_normalized"`
	Position       string    `db:"position"`
	Team           string    `db:"team"`
	InjuryStatus   string    `db:"injury_status"`
	PercentOwned   float64   `db:"percent_owned"`
	Seasons        []byte    `db:"seasons"`
	UpdatedAt      time.Time `db:"updated_at"`
}
