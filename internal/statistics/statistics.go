// Package statistics summarizes a learner's answer history by month.
package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/at-ishikawa/memoquiz/internal/attempt"
)

// PeriodStatistics holds statistics for one month, "2026-03".
type PeriodStatistics struct {
	Period        string
	Attempts      int // every answer submitted
	Correct       int
	FirstAnswers  int // quizzes answered for the first time in this period
	Reviews       int // answers to quizzes already answered before
	UniqueQuizzes int
}

// Accuracy is Correct over Attempts, 0 when nothing was answered.
func (s PeriodStatistics) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// AggregateStatistics holds totals across all periods. UniqueQuizzes is deduplicated across periods.
type AggregateStatistics struct {
	Attempts      int
	Correct       int
	FirstAnswers  int
	Reviews       int
	UniqueQuizzes int
}

type Result struct {
	Periods   []PeriodStatistics
	Aggregate AggregateStatistics
}

type Filter struct {
	// Year and Month of 0 mean no filter. Month is ignored without Year.
	Year  int
	Month int
}

type periodData struct {
	attempts     int
	correct      int
	firstAnswers int
	reviews      int
	quizzes      map[int64]struct{}
}

// Calculate groups attempts into calendar months of loc.
// The first attempt of a quiz counts as a first answer even when it falls outside the filter,
// so later attempts in the filtered range are still reviews.
func Calculate(attempts []attempt.Attempt, loc *time.Location, filter Filter) Result {
	sorted := make([]attempt.Attempt, len(attempts))
	copy(sorted, attempts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].AnsweredAt.Equal(sorted[j].AnsweredAt) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].AnsweredAt.Before(sorted[j].AnsweredAt)
	})

	stats := make(map[string]*periodData)
	seen := make(map[int64]struct{})
	globalQuizzes := make(map[int64]struct{})

	for _, a := range sorted {
		if a.AnsweredAt.IsZero() {
			continue
		}
		_, answeredBefore := seen[a.QuizID]
		seen[a.QuizID] = struct{}{}

		at := a.AnsweredAt.In(loc)
		if !filter.matches(at) {
			continue
		}

		period := fmt.Sprintf("%d-%02d", at.Year(), int(at.Month()))
		data := stats[period]
		if data == nil {
			data = &periodData{quizzes: make(map[int64]struct{})}
			stats[period] = data
		}
		data.attempts++
		if a.IsCorrect {
			data.correct++
		}
		if answeredBefore {
			data.reviews++
		} else {
			data.firstAnswers++
		}
		data.quizzes[a.QuizID] = struct{}{}
		globalQuizzes[a.QuizID] = struct{}{}
	}

	return buildResult(stats, globalQuizzes)
}

func (f Filter) matches(t time.Time) bool {
	if f.Year == 0 {
		return true
	}
	if t.Year() != f.Year {
		return false
	}
	if f.Month == 0 {
		return true
	}
	return int(t.Month()) == f.Month
}

func buildResult(stats map[string]*periodData, globalQuizzes map[int64]struct{}) Result {
	periods := make([]PeriodStatistics, 0, len(stats))
	var agg AggregateStatistics
	for period, data := range stats {
		periods = append(periods, PeriodStatistics{
			Period:        period,
			Attempts:      data.attempts,
			Correct:       data.correct,
			FirstAnswers:  data.firstAnswers,
			Reviews:       data.reviews,
			UniqueQuizzes: len(data.quizzes),
		})
		agg.Attempts += data.attempts
		agg.Correct += data.correct
		agg.FirstAnswers += data.firstAnswers
		agg.Reviews += data.reviews
	}
	agg.UniqueQuizzes = len(globalQuizzes)

	// newest first
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})
	return Result{Periods: periods, Aggregate: agg}
}
