// Package quizschema validates the question list stored with each quiz.
package quizschema

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/garnizeh/boards/internal/apperr"
	"github.com/garnizeh/boards/pkg/models"
	"github.com/qri-io/jsonschema"
)

//go:embed questions.schema.json
var schemaJSON []byte

// maxReported bounds how many schema violations end up in the error message.
const maxReported = 3

var questions = mustCompile(schemaJSON)

func mustCompile(b []byte) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(b, rs); err != nil {
		panic(fmt.Sprintf("compile question schema: %v", err))
	}
	return rs
}

// Validate checks raw, a JSON array of questions, and decodes it.
func Validate(ctx context.Context, raw json.RawMessage) ([]models.Question, error) {
	if len(raw) == 0 {
		return nil, apperr.Validation("questions are required")
	}

	keyErrs, err := questions.ValidateBytes(ctx, raw)
	if err != nil {
		return nil, apperr.Validation("questions must be valid JSON")
	}
	if len(keyErrs) > 0 {
		msgs := make([]string, 0, maxReported)
		for i, ke := range keyErrs {
			if i == maxReported {
				break
			}
			path := ke.PropertyPath
			if path == "" {
				path = "/"
			}
			msgs = append(msgs, path+": "+ke.Message)
		}
		return nil, apperr.Validation("invalid questions: " + strings.Join(msgs, "; "))
	}

	var qs []models.Question
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, apperr.Validation("questions must be valid JSON")
	}

	return qs, nil
}
