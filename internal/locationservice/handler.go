package locationservice

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/growse/www.growse.com/internal/common"
)

// ErrMissingField signals an incomplete ping; the boundary rejects the
// request outright with no partial save.
var ErrMissingField = errors.New("missing required field")

func NewLocationService(db *sql.DB) *LocationService {
	return &LocationService{m: newLocationModel(db)}
}

// RecordPing validates and persists a device ping. All four fields are
// required. The device timestamp is a millisecond epoch value divided down
// with exact decimal arithmetic, so fractional milliseconds survive and no
// floating-point drift accumulates across samples.
func (s *LocationService) RecordPing(ctx context.Context, req *RecordPingRequest) (*Location, error) {
	if req.Lat == "" || req.Long == "" || req.Acc == "" || req.Time == "" {
		return nil, ErrMissingField
	}

	v := common.NewValidator()

	lat, err := decimal.NewFromString(req.Lat)
	v.Check(err == nil, "lat", "must be a decimal number")
	long, err := decimal.NewFromString(req.Long)
	v.Check(err == nil, "long", "must be a decimal number")
	acc, err := decimal.NewFromString(req.Acc)
	v.Check(err == nil, "acc", "must be a decimal number")
	millis, err := decimal.NewFromString(req.Time)
	v.Check(err == nil, "time", "must be a millisecond epoch value")

	if !v.Valid() {
		return nil, v.ValidationError()
	}

	location := &Location{
		Latitude:        lat,
		Longitude:       long,
		Accuracy:        acc,
		DeviceTimestamp: deviceTimestamp(millis),
	}

	if err := s.m.insert(ctx, location); err != nil {
		return nil, err
	}

	return location, nil
}

// deviceTimestamp converts a millisecond epoch decimal to a timestamp.
// Dividing by 1000 is done by scaling to integer nanoseconds, which is
// exact for anything down to nanosecond resolution.
func deviceTimestamp(millis decimal.Decimal) time.Time {
	nanos := millis.Mul(decimal.NewFromInt(int64(time.Millisecond)))
	return time.Unix(0, nanos.IntPart()).UTC()
}

// GetLatest returns the most recently received location.
func (s *LocationService) GetLatest(ctx context.Context) (*Location, error) {
	return s.m.getLatest(ctx)
}
