package statistics

import (
	"fmt"
	"math"

	"github.com/lox/drawpoker/internal/evaluator"
)

// NumCategories is the number of hand categories
const NumCategories = int(evaluator.StraightFlush) + 1

// MaxDiscards is the most cards a hand can throw in one draw
const MaxDiscards = 5

// HandResult is the outcome of one player's draw
type HandResult struct {
	Seed      int64 // Session seed (for replay)
	Seat      int
	Before    evaluator.HandRank // Ranking as dealt
	After     evaluator.HandRank // Ranking after the draw
	Discarded int
	Shortfall int  // Discards the deck could not replace
	Won       bool // Held (or shared) the best hand after the draw
}

// Improved reports whether the draw made the hand stronger
func (r HandResult) Improved() bool {
	return r.After > r.Before
}

// CategoryCounts counts hands per category, indexed by evaluator.Category
type CategoryCounts [NumCategories]int

// Total returns the number of hands counted
func (c CategoryCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Statistics accumulates draw results across sessions
type Statistics struct {
	Sessions int
	Hands    int

	Before CategoryCounts // Categories as dealt
	After  CategoryCounts // Categories after the draw
	Wins   CategoryCounts // Winning category per winning hand

	Improved   int
	Unchanged  int
	Worsened   int // Only possible when a shortfall breaks a hand
	SplitPots  int
	Shortfalls int // Hands that could not replace every discard
	ShortCards int // Total discards left unreplaced

	DiscardHistogram [MaxDiscards + 1]int
	SumDiscards      float64
	SumDiscards2     float64 // Sum of squares for variance calculation
}

// AddSession records one session's hands. The session counts as a split pot
// when more than one result is marked Won.
func (s *Statistics) AddSession(results []HandResult) {
	s.Sessions++
	winners := 0
	for _, r := range results {
		s.Add(r)
		if r.Won {
			winners++
		}
	}
	if winners > 1 {
		s.SplitPots++
	}
}

// Add incorporates a single hand result
func (s *Statistics) Add(r HandResult) {
	s.Hands++
	s.Before[r.Before.Category()]++
	s.After[r.After.Category()]++
	if r.Won {
		s.Wins[r.After.Category()]++
	}

	switch {
	case r.After > r.Before:
		s.Improved++
	case r.After < r.Before:
		s.Worsened++
	default:
		s.Unchanged++
	}

	if r.Shortfall > 0 {
		s.Shortfalls++
		s.ShortCards += r.Shortfall
	}

	d := min(max(r.Discarded, 0), MaxDiscards)
	s.DiscardHistogram[d]++
	s.SumDiscards += float64(r.Discarded)
	s.SumDiscards2 += float64(r.Discarded * r.Discarded)
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Sessions += other.Sessions
	s.Hands += other.Hands
	for i := range s.Before {
		s.Before[i] += other.Before[i]
		s.After[i] += other.After[i]
		s.Wins[i] += other.Wins[i]
	}
	s.Improved += other.Improved
	s.Unchanged += other.Unchanged
	s.Worsened += other.Worsened
	s.SplitPots += other.SplitPots
	s.Shortfalls += other.Shortfalls
	s.ShortCards += other.ShortCards
	for i := range s.DiscardHistogram {
		s.DiscardHistogram[i] += other.DiscardHistogram[i]
	}
	s.SumDiscards += other.SumDiscards
	s.SumDiscards2 += other.SumDiscards2
}

// Frequency returns the share of hands in category c before or after the draw
func (s *Statistics) Frequency(c evaluator.Category, after bool) float64 {
	if s.Hands == 0 {
		return 0
	}
	counts := s.Before
	if after {
		counts = s.After
	}
	return float64(counts[c]) / float64(s.Hands)
}

// ImprovementRate returns the share of hands the draw made stronger
func (s *Statistics) ImprovementRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Improved) / float64(s.Hands)
}

// ShortfallRate returns the share of hands that ran out of replacements
func (s *Statistics) ShortfallRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Shortfalls) / float64(s.Hands)
}

// WinShare returns the share of winning hands that held category c
func (s *Statistics) WinShare(c evaluator.Category) float64 {
	total := s.Wins.Total()
	if total == 0 {
		return 0
	}
	return float64(s.Wins[c]) / float64(total)
}

// MeanDiscards returns the average number of cards thrown per hand
func (s *Statistics) MeanDiscards() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumDiscards / float64(s.Hands)
}

// Variance returns the sample variance of discards per hand
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.MeanDiscards()
	return (s.SumDiscards2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of discards per hand
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean discards
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ImprovementCI95 returns the 95% confidence interval for the improvement
// rate using the normal approximation
func (s *Statistics) ImprovementCI95() (float64, float64) {
	p := s.ImprovementRate()
	if s.Hands == 0 {
		return 0, 0
	}
	margin := 1.96 * math.Sqrt(p*(1-p)/float64(s.Hands))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if got := s.Before.Total(); got != s.Hands {
		return fmt.Errorf("categories before draw total %d, want %d", got, s.Hands)
	}
	if got := s.After.Total(); got != s.Hands {
		return fmt.Errorf("categories after draw total %d, want %d", got, s.Hands)
	}
	if got := s.Improved + s.Unchanged + s.Worsened; got != s.Hands {
		return fmt.Errorf("improved/unchanged/worsened total %d, want %d", got, s.Hands)
	}
	hist := 0
	for _, n := range s.DiscardHistogram {
		hist += n
	}
	if hist != s.Hands {
		return fmt.Errorf("discard histogram total %d, want %d", hist, s.Hands)
	}
	if wins := s.Wins.Total(); wins < s.Sessions {
		return fmt.Errorf("%d winning hands across %d sessions", wins, s.Sessions)
	}
	if s.Shortfalls > s.Hands {
		return fmt.Errorf("shortfalls (%d) exceed hands (%d)", s.Shortfalls, s.Hands)
	}
	return nil
}
