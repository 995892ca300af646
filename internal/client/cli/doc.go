// Package cli provides the interactive scheduling command-line client.
//
// It restores the stored session, starts a background connectivity
// watcher and runs a REPL over the calendar views:
//   - day, week, month and agenda layouts of the organization's jobs
//   - navigation with next, prev and today
//   - a team filter and job details
//   - directory listings of teams, clients, users and job types
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
