package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/quiz"
	"github.com/at-ishikawa/memoquiz/internal/user"
)

// Target is one dispatch in a batch. Err marks a target that could not be resolved,
// for example a quiz whose owner no longer exists.
type Target struct {
	Quiz *quiz.Quiz
	User *user.User
	Err  error
}

type RetryTarget struct {
	Log  *Log
	Quiz *quiz.Quiz
	User *user.User
	Err  error
}

// BatchResult aggregates a bulk run. Errors holds at most Config.MaxErrors messages;
// ErrorsOmitted counts the rest.
type BatchResult struct {
	Total         int                `json:"total"`
	Successful    int                `json:"successful"`
	Failed        int                `json:"failed"`
	Skipped       int                `json:"skipped"`
	SkipReasons   map[SkipReason]int `json:"skip_reasons,omitempty"`
	Errors        []string           `json:"errors"`
	ErrorsOmitted int                `json:"errors_omitted,omitempty"`
	Results       []Result           `json:"-"`
}

type collector struct {
	result    BatchResult
	maxErrors int
}

func newCollector(total, maxErrors int) *collector {
	return &collector{
		result: BatchResult{
			Total:   total,
			Errors:  []string{},
			Results: make([]Result, 0, total),
		},
		maxErrors: maxErrors,
	}
}

func (c *collector) add(res Result) {
	c.result.Results = append(c.result.Results, res)
	switch res.Outcome {
	case OutcomeSent:
		c.result.Successful++
	case OutcomeSkipped:
		c.result.Skipped++
		if c.result.SkipReasons == nil {
			c.result.SkipReasons = map[SkipReason]int{}
		}
		c.result.SkipReasons[res.Reason]++
	default:
		c.result.Failed++
	}
	if res.Err != nil {
		c.addError(fmt.Sprintf("quiz %d user %d: %v", res.QuizID, res.UserID, res.Err))
	}
}

func (c *collector) addError(msg string) {
	if len(c.result.Errors) >= c.maxErrors {
		c.result.ErrorsOmitted++
		return
	}
	c.result.Errors = append(c.result.Errors, msg)
}

// abort counts every remaining item as failed once the batch context is done.
func (c *collector) abort(remaining int, err error) {
	c.result.Failed += remaining
	c.addError(fmt.Sprintf("batch interrupted with %d items left: %v", remaining, err))
}

// DispatchMany runs Dispatch over targets. A failing item never affects the others.
func (d *Dispatcher) DispatchMany(ctx context.Context, targets []Target, opts Options) BatchResult {
	c := newCollector(len(targets), d.cfg.MaxErrors)
	for i, t := range targets {
		if err := ctx.Err(); err != nil {
			c.abort(len(targets)-i, err)
			break
		}
		if t.Err != nil {
			c.add(unresolved(t.Quiz, t.User, t.Err))
			continue
		}
		c.add(d.Dispatch(ctx, t.Quiz, t.User, opts))
	}
	d.logBatch("dispatch", c.result)
	return c.result
}

// RetryMany runs Retry over targets with the same isolation as DispatchMany.
func (d *Dispatcher) RetryMany(ctx context.Context, targets []RetryTarget) BatchResult {
	c := newCollector(len(targets), d.cfg.MaxErrors)
	for i, t := range targets {
		if err := ctx.Err(); err != nil {
			c.abort(len(targets)-i, err)
			break
		}
		if t.Err != nil {
			res := unresolved(t.Quiz, t.User, t.Err)
			if t.Log != nil {
				res.QuizID, res.UserID = t.Log.QuizID, t.Log.UserID
			}
			c.add(res)
			continue
		}
		c.add(d.Retry(ctx, t.Log, t.Quiz, t.User))
	}
	d.logBatch("retry", c.result)
	return c.result
}

func unresolved(q *quiz.Quiz, u *user.User, err error) Result {
	res := Result{Outcome: OutcomeFailed, Err: err}
	if q != nil {
		res.QuizID = q.ID
		res.UserID = q.UserID
	}
	if u != nil {
		res.UserID = u.ID
	}
	return res
}

func (d *Dispatcher) logBatch(kind string, r BatchResult) {
	d.logger.Info("batch finished",
		zap.String("kind", kind),
		zap.Int("total", r.Total),
		zap.Int("successful", r.Successful),
		zap.Int("failed", r.Failed),
		zap.Int("skipped", r.Skipped),
	)
}
