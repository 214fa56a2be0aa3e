package quality

import (
	"math/rand"
	"sync"
	"time"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

const trendMonths = 6

// JitterSource yields the offset applied to each synthetic trend score.
type JitterSource interface {
	Jitter() float64
}

// RandJitter draws offsets uniformly from [-amplitude, amplitude].
type RandJitter struct {
	mu        sync.Mutex
	rnd       *rand.Rand
	amplitude float64
}

// NewRandJitter builds a seeded jitter source; equal seeds give equal series.
func NewRandJitter(seed int64, amplitude float64) *RandJitter {
	return &RandJitter{rnd: rand.New(rand.NewSource(seed)), amplitude: amplitude}
}

// Jitter implements JitterSource.
func (j *RandJitter) Jitter() float64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return (j.rnd.Float64()*2 - 1) * j.amplitude
}

// ComputePerformanceTrend builds a six-month synthetic series ending at now's
// month. The final point equals current; earlier points are current plus
// jitter, clamped to [0,100]. A nil jitter yields a flat series.
func ComputePerformanceTrend(current models.QualityMetrics, now time.Time, jitter JitterSource) models.PerformanceTrend {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.TrendPoint, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		month := monthStart.AddDate(0, -i, 0).Format("2006-01")
		if i == 0 {
			points = append(points, models.TrendPoint{
				Month:        month,
				Overall:      current.Overall,
				Academic:     current.Academic,
				Teaching:     current.Teaching,
				Operational:  current.Operational,
				Satisfaction: current.Satisfaction,
			})
			continue
		}
		points = append(points, models.TrendPoint{
			Month:        month,
			Overall:      jittered(current.Overall, jitter),
			Academic:     jittered(current.Academic, jitter),
			Teaching:     jittered(current.Teaching, jitter),
			Operational:  jittered(current.Operational, jitter),
			Satisfaction: jittered(current.Satisfaction, jitter),
		})
	}
	return models.PerformanceTrend{Synthetic: true, Points: points}
}

func jittered(score int, jitter JitterSource) int {
	if jitter == nil {
		return score
	}
	return toScore(float64(score) + jitter.Jitter())
}
