// Package input validates the owner/repo/date-window arguments of a run.
package input

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	FlagEditor   = "--editor"
	FlagNoEditor = "--no-editor"

	// DateLayout is the calendar form used everywhere dates are shown.
	DateLayout = "2006-01-02"
)

var ErrValidation = errors.New("invalid input")

// Params are the validated inputs of one run.
type Params struct {
	Owner     string
	Repo      string
	Start     time.Time
	End       time.Time
	UseEditor bool
}

// Window returns start and end in calendar form.
func (p Params) Window() (string, string) {
	return p.Start.Format(DateLayout), p.End.Format(DateLayout)
}

// Slug returns "owner/repo".
func (p Params) Slug() string {
	return p.Owner + "/" + p.Repo
}

// Parse validates positional CLI arguments (program name excluded):
// owner, repo, start date, end date and an optional editor flag.
// The editor defaults to enabled when the flag is absent.
func Parse(args []string) (Params, error) {
	if len(args) < 4 || len(args) > 5 {
		return Params{}, fmt.Errorf("%w: expected 4 or 5 arguments, got %d", ErrValidation, len(args))
	}

	useEditor := true
	if len(args) == 5 {
		switch strings.ToLower(args[4]) {
		case FlagNoEditor:
			useEditor = false
		case FlagEditor:
			useEditor = true
		default:
			return Params{}, fmt.Errorf("%w: unknown option '%s'. Use %s or %s", ErrValidation, args[4], FlagEditor, FlagNoEditor)
		}
	}

	params, err := Validate(args[0], args[1], args[2], args[3])
	if err != nil {
		return Params{}, err
	}
	params.UseEditor = useEditor
	return params, nil
}

// Validate applies the owner/repo/date rules shared by the CLI and the HTTP surface.
// The returned Params has the editor enabled.
func Validate(owner, repo, start, end string) (Params, error) {
	owner = strings.TrimSpace(owner)
	repo = strings.TrimSpace(repo)
	if owner == "" || repo == "" {
		return Params{}, fmt.Errorf("%w: repository owner and name cannot be empty", ErrValidation)
	}

	startDate, err := ParseDate(start)
	if err != nil {
		return Params{}, err
	}
	endDate, err := ParseDate(end)
	if err != nil {
		return Params{}, err
	}

	if startDate.After(endDate) {
		return Params{}, fmt.Errorf("%w: start must be before end", ErrValidation)
	}

	return Params{
		Owner:     owner,
		Repo:      repo,
		Start:     startDate,
		End:       endDate,
		UseEditor: true,
	}, nil
}

// ParseDate accepts human-entered dates ("2024-01-31", "Jan 31 2024", "01/31/2024", ...).
// Dates without a zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: invalid date format '%s': empty date", ErrValidation, s)
	}
	t, err := dateparse.ParseIn(trimmed, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date format '%s': %v", ErrValidation, s, err)
	}
	return t, nil
}
