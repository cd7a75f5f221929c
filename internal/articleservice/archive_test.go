package articleservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestFlagNewYears(t *testing.T) {
	archives := []Archive{
		{Month: month(2023, time.March), Count: 2},
		{Month: month(2023, time.February), Count: 1},
		{Month: month(2022, time.December), Count: 4},
	}

	flagged := flagNewYears(archives)

	assert.Equal(t, []bool{true, false, true}, []bool{flagged[0].NewYear, flagged[1].NewYear, flagged[2].NewYear})
}

func TestFlagNewYearsFirstRecordAlwaysFlagged(t *testing.T) {
	archives := flagNewYears([]Archive{{Month: month(2024, time.June), Count: 1}})
	assert.True(t, archives[0].NewYear)
}

func TestFlagNewYearsEmpty(t *testing.T) {
	assert.Empty(t, flagNewYears(nil))
}
