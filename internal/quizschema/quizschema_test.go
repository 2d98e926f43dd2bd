package quizschema_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/garnizeh/boards/internal/apperr"
	"github.com/garnizeh/boards/internal/quizschema"
)

const validQuestion = `{"question_text":"2+2?","option_a":"3","option_b":"4","option_c":"5","option_d":"6","correct_option":"B"}`

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		wantLen int
	}{
		{name: "Single", raw: `[` + validQuestion + `]`, wantLen: 1},
		{name: "Two", raw: `[` + validQuestion + `,` + strings.Replace(validQuestion, `"B"`, `"D"`, 1) + `]`, wantLen: 2},
		{name: "Empty", raw: ``, wantErr: true},
		{name: "EmptyArray", raw: `[]`, wantErr: true},
		{name: "NotArray", raw: validQuestion, wantErr: true},
		{name: "BadJSON", raw: `[{`, wantErr: true},
		{name: "MissingOption", raw: `[{"question_text":"q","option_a":"a","option_b":"b","option_c":"c","correct_option":"A"}]`, wantErr: true},
		{name: "BlankOption", raw: `[{"question_text":"q","option_a":"a","option_b":"","option_c":"c","option_d":"d","correct_option":"A"}]`, wantErr: true},
		{name: "BadCorrectOption", raw: `[{"question_text":"q","option_a":"a","option_b":"b","option_c":"c","option_d":"d","correct_option":"E"}]`, wantErr: true},
		{name: "ExtraField", raw: `[{"question_text":"q","option_a":"a","option_b":"b","option_c":"c","option_d":"d","correct_option":"A","option_e":"e"}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := quizschema.Validate(context.Background(), json.RawMessage(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %#v", qs)
				}
				if apperr.KindOf(err) != apperr.KindValidation {
					t.Fatalf("expected validation kind, got %v", apperr.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(qs) != tt.wantLen {
				t.Fatalf("want %d questions got %d", tt.wantLen, len(qs))
			}
		})
	}
}

func TestValidate_DecodesFields(t *testing.T) {
	qs, err := quizschema.Validate(context.Background(), json.RawMessage(`[`+validQuestion+`]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := qs[0]
	if q.QuestionText != "2+2?" || q.OptionB != "4" || q.CorrectOption != "B" {
		t.Fatalf("unexpected question: %#v", q)
	}
}
