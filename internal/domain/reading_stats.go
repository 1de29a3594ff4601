package domain

import "time"

const DefaultWeeklyGoal = 50

// ReadingStats aggregates reading activity across sessions.
type ReadingStats struct {
	TotalRead        int              `json:"totalArticlesRead"`
	TimeSpentReading time.Duration    `json:"timeSpentReading"`
	PerCategory      map[Category]int `json:"favoriteCategories"`
	ReadToday        int              `json:"articlesReadToday"`
	LastReadDate     time.Time        `json:"lastReadDate"`
	WeeklyGoal       int              `json:"weeklyReadingGoal"`
	CurrentStreak    int              `json:"currentStreak"`
}

// NewReadingStats returns empty stats with the default goal.
func NewReadingStats() ReadingStats {
	return ReadingStats{
		PerCategory: map[Category]int{},
		WeeklyGoal:  DefaultWeeklyGoal,
	}
}

// RecordRead counts one read of an article in category c at now. Calendar
// days are evaluated in now's location.
func (s *ReadingStats) RecordRead(c Category, now time.Time) {
	if s.PerCategory == nil {
		s.PerCategory = map[Category]int{}
	}
	s.TotalRead++
	s.PerCategory[c]++

	if sameDay(s.LastReadDate, now) {
		s.ReadToday++
	} else {
		s.ReadToday = 1
		s.updateStreak(now)
	}

	s.LastReadDate = now
}

// updateStreak runs on the first read of a calendar day. A zero LastReadDate
// matches no day, so the very first read starts a streak of 1 instead of
// leaving it at 0 the way a "now" default for the last read date would.
func (s *ReadingStats) updateStreak(now time.Time) {
	if sameDay(s.LastReadDate, now.AddDate(0, 0, -1)) {
		s.CurrentStreak++
		return
	}
	s.CurrentStreak = 1
}

// AddReadingTime accumulates time spent in reading mode.
func (s *ReadingStats) AddReadingTime(d time.Duration) {
	if d > 0 {
		s.TimeSpentReading += d
	}
}

// WeeklyProgress is today's reads over the goal, capped at 1.
func (s ReadingStats) WeeklyProgress() float64 {
	goal := s.WeeklyGoal
	if goal <= 0 {
		goal = DefaultWeeklyGoal
	}
	return min(float64(s.ReadToday)/float64(goal), 1.0)
}

// TopCategory is the most read category; ties resolve in enumeration order.
func (s ReadingStats) TopCategory() Category {
	top, best := CategoryGeneral, 0
	for _, c := range allCategories {
		if n := s.PerCategory[c]; n > best {
			top, best = c, n
		}
	}
	return top
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
