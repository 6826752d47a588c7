package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/memoquiz/internal/datasync"
	"github.com/at-ishikawa/memoquiz/internal/notification"
	"github.com/at-ishikawa/memoquiz/internal/server"
	"github.com/at-ishikawa/memoquiz/internal/statistics"
	"github.com/at-ishikawa/memoquiz/internal/token"
)

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	bold   = color.New(color.Bold)
)

func printBatchResult(w io.Writer, title string, r *notification.BatchResult) {
	bold.Fprintf(w, "%s: %d total\n", title, r.Total)
	green.Fprintf(w, "  sent:    %d\n", r.Successful)
	yellow.Fprintf(w, "  skipped: %d\n", r.Skipped)

	reasons := make([]string, 0, len(r.SkipReasons))
	for reason := range r.SkipReasons {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(w, "    %s: %d\n", reason, r.SkipReasons[notification.SkipReason(reason)])
	}

	if r.Failed == 0 {
		fmt.Fprintf(w, "  failed:  0\n")
		return
	}
	red.Fprintf(w, "  failed:  %d\n", r.Failed)
	for _, msg := range r.Errors {
		red.Fprintf(w, "    %s\n", msg)
	}
	if r.ErrorsOmitted > 0 {
		red.Fprintf(w, "    ... %d more\n", r.ErrorsOmitted)
	}
}

func printNotifyResult(w io.Writer, r *server.NotifyResponse) {
	switch r.Outcome {
	case notification.OutcomeSent:
		green.Fprintf(w, "quiz %d user %d: sent\n", r.QuizID, r.UserID)
	case notification.OutcomeSkipped:
		yellow.Fprintf(w, "quiz %d user %d: skipped (%s)\n", r.QuizID, r.UserID, r.Reason)
	default:
		red.Fprintf(w, "quiz %d user %d: %s: %s\n", r.QuizID, r.UserID, r.Outcome, r.Error)
	}
}

func printImportResult(w io.Writer, r *datasync.ImportResult, dryRun bool) {
	fmt.Fprintln(w, "\nImport Summary:")
	if dryRun {
		fmt.Fprintln(w, "  (dry-run mode, no changes made)")
	}
	fmt.Fprintf(w, "  Memos:   %d new, %d skipped\n", r.MemosNew, r.MemosSkipped)
	fmt.Fprintf(w, "  Quizzes: %d new\n", r.QuizzesNew)
	fmt.Fprintf(w, "  Users:   %d new\n", r.UsersNew)
	if r.Failed > 0 {
		red.Fprintf(w, "  Failed:  %d\n", r.Failed)
	}
}

func printSubject(w io.Writer, s token.Subject) {
	green.Fprintln(w, "valid")
	fmt.Fprintf(w, "  quiz:    %d\n", s.QuizID)
	fmt.Fprintf(w, "  user:    %d\n", s.UserID)
	fmt.Fprintf(w, "  expires: %s\n", s.ExpiresAt.Format(time.RFC3339))
}

func printStatistics(w io.Writer, r statistics.Result) {
	if len(r.Periods) == 0 {
		fmt.Fprintln(w, "No answers found for the specified period.")
		return
	}
	bold.Fprintln(w, "Answer Statistics")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PERIOD\tANSWERS\tCORRECT\tFIRST\tREVIEWS\tQUIZZES")
	for _, p := range r.Periods {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d (%.0f%%)\t%d\t%d\t%d\n",
			p.Period, p.Attempts, p.Correct, p.Accuracy()*100, p.FirstAnswers, p.Reviews, p.UniqueQuizzes)
	}
	a := r.Aggregate
	_, _ = fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%d\t%d\t%d\n", a.Attempts, a.Correct, a.FirstAnswers, a.Reviews, a.UniqueQuizzes)
	_ = tw.Flush()
}
