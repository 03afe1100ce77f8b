// Package cli provides the interactive ExamHub command-line client.
//
// It wires configuration, the encrypted local session store, the
// session-aware transport and the API services into a small REPL.
// Typical flow: restore the stored session if there is one, otherwise
// prompt for credentials, then execute user commands.
//
// Key features:
//   - Register / Login / Logout / password change and reset
//   - Browse the question feed, search it, open a question
//   - Catalog listings: institutes, courses, subjects
//   - Top contributors and the personal earnings dashboard
//
// Every failure is reported with its user-facing message. When the
// session cannot be refreshed any more the user is asked to log in again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
