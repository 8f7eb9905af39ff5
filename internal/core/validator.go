package core

// validator.go runs the fixed validation pipeline over a parsed table.
//
// Stages execute in a fixed order. A terminal stage that emits errors stops
// the pipeline and its errors become the entire report; cumulative stages
// always run to completion and their errors accumulate across stages. New
// rules are added by inserting a stage, not by restructuring control flow.

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Status is the overall outcome of a validation call.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// ValidationError is one flagged defect. RowIndex and ID are nil for
// file-level errors (Column == ColumnFile).
type ValidationError struct {
	RowIndex *int   `json:"row_index"`
	ID       *int64 `json:"id"`
	Column   string `json:"column"`
	Message  string `json:"error_message"`
}

// Result is the immutable output of one validation call. Status is fail iff
// Errors is non-empty. Errors follow stage order and, within a stage,
// ascending row order; a row appears once per violated rule.
type Result struct {
	Status Status            `json:"status"`
	Errors []ValidationError `json:"errors"`
}

// A stage inspects the whole table and returns its errors plus whether the
// pipeline must stop. Stages are pure: none mutates the table, so validating
// the same input twice yields an identical report.
type stage func(t *Table) (errs []ValidationError, stop bool)

var pipeline = []stage{
	checkSchema,
	checkVolume,
	checkEmails,
	checkAges,
}

// Validate transforms one Table into one Result by running every pipeline
// stage in order until a terminal stage fires.
func Validate(t *Table) Result {
	errs := []ValidationError{}
	for _, run := range pipeline {
		stageErrs, stop := run(t)
		errs = append(errs, stageErrs...)
		if stop {
			break
		}
	}

	status := StatusPass
	if len(errs) > 0 {
		status = StatusFail
	}
	return Result{Status: status, Errors: errs}
}

// checkSchema verifies every required column is present. Missing columns are
// file-level errors and stop the pipeline: row checks against columns that
// do not exist would only produce misleading output alongside the structural
// defect.
func checkSchema(t *Table) ([]ValidationError, bool) {
	var errs []ValidationError
	for _, col := range RequiredColumns {
		if !t.HasColumn(col) {
			errs = append(errs, fileError(fmt.Sprintf("Missing required column: %s", col)))
		}
	}
	return errs, len(errs) > 0
}

// checkVolume rejects files below the minimum sample size. Row-level quality
// checks on a handful of rows are noise rather than signal, so the gate is
// all-or-nothing: one file-level error and nothing else.
func checkVolume(t *Table) ([]ValidationError, bool) {
	if len(t.Rows) < MinDataRows {
		err := fileError(fmt.Sprintf("File must contain at least %d data rows.", MinDataRows))
		return []ValidationError{err}, true
	}
	return nil, false
}

// checkEmails flags every row whose email cell is missing, empty, or
// whitespace only.
func checkEmails(t *Table) ([]ValidationError, bool) {
	var errs []ValidationError
	for i := range t.Rows {
		raw, _ := t.Cell(i, ColumnEmail)
		if strings.TrimSpace(raw) != "" {
			continue
		}
		errs = append(errs, rowError(t, i, ColumnEmail, "Email is required and cannot be blank."))
	}
	return errs, false
}

// checkAges classifies every age cell and flags format and range defects
// with distinct messages. Runs independently of the email check: a row with
// both defects contributes two errors.
func checkAges(t *Table) ([]ValidationError, bool) {
	var errs []ValidationError
	for i := range t.Rows {
		raw, _ := t.Cell(i, ColumnAge)
		value, class := ClassifyAge(raw)

		switch class {
		case AgeValid:
			continue
		case AgeBadFormat:
			msg := "Invalid age format: value is missing."
			if trimmed := strings.TrimSpace(raw); trimmed != "" {
				msg = fmt.Sprintf("Invalid age format: '%s'.", trimmed)
			}
			errs = append(errs, rowError(t, i, ColumnAge, msg))
		case AgeOutOfRange:
			errs = append(errs, rowError(t, i, ColumnAge, ageRangeMessage(raw, value)))
		}
	}
	return errs, false
}

// ageRangeMessage names the offending value. Ages that do not fit int64 are
// echoed as their original digits instead of the clamped parse result.
func ageRangeMessage(raw string, value int64) string {
	shown := strconv.FormatInt(value, 10)
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "+")
	if trimmed != shown {
		if _, err := strconv.ParseInt(trimmed, 10, 64); errors.Is(err, strconv.ErrRange) {
			shown = trimmed
		}
	}
	return fmt.Sprintf("Age %s is outside the allowed range %d-%d.", shown, MinAge, MaxAge)
}

func fileError(msg string) ValidationError {
	return ValidationError{Column: ColumnFile, Message: msg}
}

// rowError builds an error for a data row. The reported row index is offset
// by one because the header occupies index 0.
func rowError(t *Table, row int, col, msg string) ValidationError {
	idx := row + 1
	return ValidationError{
		RowIndex: &idx,
		ID:       t.RowID(row),
		Column:   col,
		Message:  msg,
	}
}
