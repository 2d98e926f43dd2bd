// Package db embeds the SQL migrations of both deployments.
package db

import "embed"

//go:embed migrations
var Migrations embed.FS

const (
	QuizDir     = "migrations/quiz"
	JobBoardDir = "migrations/jobboard"
)

// Dir returns the migrations directory for the named app ("quiz" or "jobboard").
func Dir(app string) (string, bool) {
	switch app {
	case "quiz":
		return QuizDir, true
	case "jobboard":
		return JobBoardDir, true
	default:
		return "", false
	}
}
