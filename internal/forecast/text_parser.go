package forecast

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
)

// ErrNoHeader is returned when the forecast text contains no recognizable
// date header line.
var ErrNoHeader = errors.New("forecast text has no date header line")

var (
	headerDateRe   = regexp.MustCompile(`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+(\d{1,2})`)
	intervalLineRe = regexp.MustCompile(`^(\d{2})-(\d{2})UT\s+(.+)$`)
)

var monthNames = map[string]string{
	"Jan": "January", "Feb": "February", "Mar": "March", "Apr": "April",
	"May": "May", "Jun": "June", "Jul": "July", "Aug": "August",
	"Sep": "September", "Oct": "October", "Nov": "November", "Dec": "December",
}

// TextForecastParser parses the fixed-width NOAA 3-day geomagnetic forecast
// table into per-day, per-3-hour-interval Kp values, shifting the UTC slots
// into the display zone.
type TextForecastParser struct {
	utcOffset int
}

// NewTextForecastParser creates a parser with the given UTC-to-display-zone
// hour offset.
func NewTextForecastParser(utcOffset int) *TextForecastParser {
	return &TextForecastParser{utcOffset: utcOffset}
}

type headerDate struct {
	month string
	day   int
}

// Parse turns the raw forecast text into forecast days. It fails only when
// no date header is found; unrecognized lines and non-numeric value tokens
// are skipped as missing data.
func (p *TextForecastParser) Parse(rawText string) ([]models.ForecastDay, error) {
	lines := strings.Split(rawText, "\n")

	dates := findHeaderDates(lines)
	if len(dates) == 0 {
		return nil, ErrNoHeader
	}

	days := make([]models.ForecastDay, len(dates))
	for i, d := range dates {
		days[i] = models.ForecastDay{
			DateLabel:  fmt.Sprintf("%02d %s", d.day, monthNames[d.month]),
			Month:      d.month,
			DayOfMonth: d.day,
			Confidence: models.ConfidenceHigh,
			Provenance: models.ProvenanceParsedText,
		}
	}

	for _, line := range lines {
		p.parseIntervalLine(strings.TrimSpace(line), days)
	}

	for i := range days {
		sort.SliceStable(days[i].Intervals, func(a, b int) bool {
			return days[i].Intervals[a].LocalStartHour < days[i].Intervals[b].LocalStartHour
		})
	}
	return days, nil
}

// findHeaderDates locates the header line holding the forecast dates. A line
// qualifies when it carries at least two "Mon D" tokens; the line with the
// most tokens wins because the ":Issued:" and "breakdown" lines also carry
// dates.
func findHeaderDates(lines []string) []headerDate {
	var best []headerDate
	for _, line := range lines {
		matches := headerDateRe.FindAllStringSubmatch(line, -1)
		if len(matches) < 2 {
			continue
		}
		dates := make([]headerDate, 0, len(matches))
		for _, m := range matches {
			day, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			dates = append(dates, headerDate{month: m[1], day: day})
		}
		if len(dates) > len(best) {
			best = dates
		}
	}
	if len(best) < 2 {
		return nil
	}
	return best
}

// parseIntervalLine handles one "HH-HHUT v v v" row, assigning each value to
// its day column. An interval whose shifted start crosses midnight belongs
// to the next display-zone day, clamped to the last available day because
// the table has no fourth column.
func (p *TextForecastParser) parseIntervalLine(line string, days []models.ForecastDay) {
	m := intervalLineRe.FindStringSubmatch(line)
	if m == nil {
		return
	}

	startHour, _ := strconv.Atoi(m[1])
	endHour, _ := strconv.Atoi(m[2])

	localStart := (startHour + p.utcOffset) % 24
	// An end hour of 00 is the following midnight, so the shifted interval
	// still ends offset hours later (21-00UT becomes 00:00-03:00 at +3).
	localEnd := (endHour + p.utcOffset) % 24

	localRange := fmt.Sprintf("%02d:00-%02d:00", localStart, localEnd)
	utcRange := fmt.Sprintf("%02d-%02d", startHour, endHour)

	for dayIdx, token := range strings.Fields(m[3]) {
		if dayIdx >= len(days) || token == "-" {
			continue
		}
		kp, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}

		targetDay := dayIdx
		if startHour >= 21 && localStart < 6 {
			targetDay = dayIdx + 1
			if targetDay > len(days)-1 {
				targetDay = len(days) - 1
			}
		}

		days[targetDay].Intervals = append(days[targetDay].Intervals, models.ForecastInterval{
			LocalTimeRange: localRange,
			LocalStartHour: localStart,
			Kp:             kp,
			SourceUTCRange: utcRange,
		})
		if kp > days[targetDay].MaxKp {
			days[targetDay].MaxKp = kp
		}
	}
}
