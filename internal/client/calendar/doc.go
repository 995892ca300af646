// Package calendar turns job lists into render-ready calendar data: which
// jobs fall on which day, in what order, and where a job sits on a time
// grid.
//
// Every function is pure. Inputs are never mutated and results are computed
// fresh on each call, so calling twice with the same arguments yields the
// same output.
//
// Day boundaries are evaluated in the Layout's location. New(nil) uses
// time.Local, which reproduces the "today in the viewer's timezone" behaviour
// of the web front end.
package calendar
