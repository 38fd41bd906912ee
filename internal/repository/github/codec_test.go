package github

import (
	"strings"
	"testing"
	"time"

	"daily-log/internal/domain"
	"daily-log/internal/hours"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(t *testing.T, date string) domain.LogEntry {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, date)
	require.NoError(t, err)
	entry := domain.NewLogEntry(d)
	entry.OrdinaryDay = domain.Yes
	entry.ScreenTime = hours.FromDecimal(3.5)
	entry.StudyTime = hours.FromDecimal(2)
	entry.StudyQuality = 8
	entry.Meditation = domain.No
	entry.MorningStudy = domain.Yes
	entry.MorningPhone = domain.No
	entry.LunchPhone = domain.No
	entry.DinnerPhone = domain.Yes
	entry.Running = domain.No
	entry.P = domain.No
	entry.MorningWakeUpHour = hours.FromDecimal(7.5)
	entry.Notes = "ok day"
	entry.PlanStrategies = "sleep earlier"
	return entry
}

func TestCodec_Encode(t *testing.T) {
	codec := NewCodec()
	table := domain.NewTable()
	table.Append(testEntry(t, "2025-01-06"))

	data, err := codec.Encode(table)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(domain.Columns(), ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2025-01-06,Monday,Yes,3.5,2,8,"))
}

func TestCodec_Encode_QuotesFreeText(t *testing.T) {
	codec := NewCodec()
	table := domain.NewTable()
	entry := testEntry(t, "2025-01-06")
	entry.Notes = "tired, but productive\nslept at 23:00"
	table.Append(entry)

	data, err := codec.Encode(table)
	require.NoError(t, err)

	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	require.Equal(t, 1, decoded.Len())
	assert.Equal(t, entry.Notes, decoded.Rows()[0].Notes)
}

func TestCodec_Decode(t *testing.T) {
	codec := NewCodec()

	t.Run("should decode empty content to an empty table", func(t *testing.T) {
		table, err := codec.Decode(nil)
		require.NoError(t, err)
		assert.True(t, table.IsEmpty())
	})

	t.Run("should decode a header-only file to an empty table", func(t *testing.T) {
		data := []byte(strings.Join(domain.Columns(), ",") + "\n")
		table, err := codec.Decode(data)
		require.NoError(t, err)
		assert.True(t, table.IsEmpty())
	})

	t.Run("should normalize a legacy HH:MM wake up value", func(t *testing.T) {
		data := []byte(strings.Join(domain.Columns(), ",") + "\n" +
			"2025-01-06,Monday,Yes,3.5,2,8,No,Yes,No,No,Yes,No,No,8:15,ok,plan\n")

		table, err := codec.Decode(data)

		require.NoError(t, err)
		require.Equal(t, 1, table.Len())
		wake := table.Rows()[0].MorningWakeUpHour
		assert.True(t, wake.Normalized)
		assert.Equal(t, 8.25, wake.Value)
	})

	t.Run("should fail on malformed csv", func(t *testing.T) {
		_, err := codec.Decode([]byte("\"unterminated"))
		assert.Error(t, err)
	})

	t.Run("should fail when a required column is missing", func(t *testing.T) {
		_, err := codec.Decode([]byte("Date,Weekday\n2025-01-06,Monday\n"))
		assert.Error(t, err)
	})
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec()
	table := domain.NewTable()
	table.Append(testEntry(t, "2025-01-06"))
	table.Append(testEntry(t, "2025-01-06")) // duplicate dates persist
	entry := testEntry(t, "2025-01-07")
	entry.MorningWakeUpHour = hours.Normalize("not-a-time")
	table.Append(entry)

	data, err := codec.Encode(table)
	require.NoError(t, err)

	decoded, err := codec.Decode(data)
	require.NoError(t, err)

	require.Equal(t, 3, decoded.Len())
	assert.Equal(t, table.Rows(), decoded.Rows())
	// The malformed legacy value survives the round trip byte-for-byte.
	assert.Equal(t, "not-a-time", decoded.Rows()[2].MorningWakeUpHour.String())
}
