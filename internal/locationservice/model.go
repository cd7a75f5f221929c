package locationservice

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrRecordNotFound = errors.New("record not found")

func newLocationModel(db *sql.DB) *LocationModel {
	return &LocationModel{db: db}
}

type previousPoint struct {
	latitude  decimal.Decimal
	longitude decimal.Decimal
	timestamp time.Time
}

// previous returns the most recently received location, or nil when the
// table is empty.
func (m *LocationModel) previous(ctx context.Context) (*previousPoint, error) {
	query := `
		SELECT latitude, longitude, timestamp
		FROM locations
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`

	var prev previousPoint
	err := m.db.QueryRowContext(ctx, query).Scan(&prev.latitude, &prev.longitude, &prev.timestamp)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		default:
			return nil, err
		}
	}

	return &prev, nil
}

// insert persists the location, deriving distance and time-delta from the
// immediately preceding point by receipt order; both stay null for the
// first point. The receipt timestamp and the delta against it are assigned
// by the database and scanned back.
func (m *LocationModel) insert(ctx context.Context, location *Location) error {
	prev, err := m.previous(ctx)
	if err != nil {
		return err
	}

	var distance decimal.NullDecimal
	var prevTimestamp sql.NullTime
	if prev != nil {
		metres := haversineDistance(
			prev.latitude.InexactFloat64(), prev.longitude.InexactFloat64(),
			location.Latitude.InexactFloat64(), location.Longitude.InexactFloat64())
		distance = decimal.NewNullDecimal(decimal.NewFromFloat(metres).Round(3))
		prevTimestamp = sql.NullTime{Time: prev.timestamp, Valid: true}
	}

	query := `
		INSERT INTO locations (latitude, longitude, accuracy, devicetimestamp, distance, timedelta)
		VALUES ($1, $2, $3, $4, $5,
			CASE WHEN $6::timestamptz IS NULL THEN NULL
			ELSE (EXTRACT(EPOCH FROM (now() - $6::timestamptz)) * 1e9)::bigint END)
		RETURNING id, timestamp, timedelta`

	var timeDelta sql.NullInt64
	err = m.db.QueryRowContext(ctx, query, location.Latitude, location.Longitude, location.Accuracy, location.DeviceTimestamp, distance, prevTimestamp).Scan(&location.ID, &location.Timestamp, &timeDelta)
	if err != nil {
		return err
	}

	location.Distance = distance
	if timeDelta.Valid {
		d := time.Duration(timeDelta.Int64)
		location.TimeDelta = &d
	}

	return nil
}

// getLatest returns the most recently received location.
func (m *LocationModel) getLatest(ctx context.Context) (*Location, error) {
	query := `
		SELECT id, latitude, longitude, accuracy, devicetimestamp, timestamp, distance, timedelta, COALESCE(geocoding, '')
		FROM locations
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`

	var location Location
	var timeDelta sql.NullInt64
	err := m.db.QueryRowContext(ctx, query).Scan(
		&location.ID, &location.Latitude, &location.Longitude, &location.Accuracy,
		&location.DeviceTimestamp, &location.Timestamp, &location.Distance, &timeDelta, &location.Geocoding)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	if timeDelta.Valid {
		d := time.Duration(timeDelta.Int64)
		location.TimeDelta = &d
	}

	return &location, nil
}
