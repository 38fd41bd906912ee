package services

import (
	"math"

	"daily-log/internal/domain"
	"daily-log/internal/hours"
)

// numericColumns are the columns the correlation heatmap and summary cover,
// in display order.
var numericColumns = []string{
	domain.ColScreenTime,
	domain.ColStudyTime,
	domain.ColStudyQuality,
	domain.ColMorningWakeUpHour,
}

// statsService implements StatsService
type statsService struct{}

// NewStatsService creates a new stats service
func NewStatsService() StatsService {
	return &statsService{}
}

// NumericColumns returns the columns covered by Summary and Correlation.
func NumericColumns() []string {
	out := make([]string, len(numericColumns))
	copy(out, numericColumns)
	return out
}

// numericValue extracts the numeric value of a column from an entry.
// ok is false for legacy pass-through strings and absent values.
func numericValue(entry domain.LogEntry, column string) (float64, bool) {
	switch column {
	case domain.ColScreenTime:
		return resultValue(entry.ScreenTime)
	case domain.ColStudyTime:
		return resultValue(entry.StudyTime)
	case domain.ColStudyQuality:
		return float64(entry.StudyQuality), true
	case domain.ColMorningWakeUpHour:
		return resultValue(entry.MorningWakeUpHour)
	default:
		return 0, false
	}
}

func resultValue(r hours.Result) (float64, bool) {
	if !r.Normalized {
		return 0, false
	}
	return r.Value, true
}

// Summary computes averages over the normalized numeric columns.
func (s *statsService) Summary(entries []domain.LogEntry) *Summary {
	summary := &Summary{Count: len(entries)}
	summary.AvgScreenTime = columnMean(entries, domain.ColScreenTime)
	summary.AvgStudyTime = columnMean(entries, domain.ColStudyTime)
	summary.AvgStudyQuality = columnMean(entries, domain.ColStudyQuality)
	summary.AvgWakeUpHour = columnMean(entries, domain.ColMorningWakeUpHour)
	return summary
}

func columnMean(entries []domain.LogEntry, column string) float64 {
	var sum float64
	var n int
	for _, entry := range entries {
		if v, ok := numericValue(entry, column); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Series extracts chart samples for one column in insertion order.
func (s *statsService) Series(entries []domain.LogEntry, column string) []Point {
	var points []Point
	for _, entry := range entries {
		if v, ok := numericValue(entry, column); ok {
			points = append(points, Point{Date: entry.Date, Value: v})
		}
	}
	return points
}

// Correlation computes the pairwise Pearson matrix over the numeric columns.
// Pairs are built from rows where both columns carry a normalized value;
// pairs with fewer than two observations, or with a constant column, yield
// NaN like pandas' DataFrame.corr.
func (s *statsService) Correlation(entries []domain.LogEntry) *CorrelationMatrix {
	matrix := &CorrelationMatrix{
		Columns: NumericColumns(),
		Values:  make([][]float64, len(numericColumns)),
	}
	for i := range matrix.Values {
		matrix.Values[i] = make([]float64, len(numericColumns))
	}

	for i, colA := range numericColumns {
		for j, colB := range numericColumns {
			if j < i {
				matrix.Values[i][j] = matrix.Values[j][i]
				continue
			}
			var xs, ys []float64
			for _, entry := range entries {
				a, okA := numericValue(entry, colA)
				b, okB := numericValue(entry, colB)
				if okA && okB {
					xs = append(xs, a)
					ys = append(ys, b)
				}
			}
			matrix.Values[i][j] = pearson(xs, ys)
		}
	}
	return matrix
}

// pearson computes the sample correlation coefficient of two equal-length
// series. NaN for fewer than two points or zero variance.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if len(xs) < 2 {
		return math.NaN()
	}

	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
