package locationservice

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Location is a single device ping. Latitude, longitude and accuracy are
// kept as exact decimals end to end. Timestamp is the server receipt time,
// set once at insert and never changed; Distance and TimeDelta are derived
// at write time from the immediately preceding location by receipt order and
// are null for the first point.
type Location struct {
	ID              int                 `json:"id"`
	Latitude        decimal.Decimal     `json:"latitude"`
	Longitude       decimal.Decimal     `json:"longitude"`
	Accuracy        decimal.Decimal     `json:"accuracy"`
	DeviceTimestamp time.Time           `json:"devicetimestamp"`
	Timestamp       time.Time           `json:"timestamp"`
	Distance        decimal.NullDecimal `json:"distance"`
	TimeDelta       *time.Duration      `json:"timedelta"`
	Geocoding       string              `json:"geocoding,omitempty"`
}

// Name returns the human-readable place name from the stored reverse
// geocoding response, or the empty string if there is none.
func (l *Location) Name() string {
	var geocoding struct {
		Results []struct {
			FormattedAddress string `json:"formatted_address"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(l.Geocoding), &geocoding); err != nil {
		return ""
	}
	if len(geocoding.Results) == 0 {
		return ""
	}
	return geocoding.Results[0].FormattedAddress
}

// RecordPingRequest carries the raw locator form fields. All four are
// required; Time is a millisecond epoch value, possibly fractional.
type RecordPingRequest struct {
	Lat  string
	Long string
	Acc  string
	Time string
}

type LocationModel struct {
	db *sql.DB
}

type LocationService struct {
	m *LocationModel
}
