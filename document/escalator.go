// Copyright 2025 Quadrant Analytics
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/quadrantai/woqa/ai"
	"github.com/quadrantai/woqa/core"
)

// payloadColumn is the result column that marks a document lookup.
// The match is case sensitive.
const payloadColumn = "BinaryString"

const answerPromptTemplate = `
You are an expert assistant. The following is the extracted text from a document:

---

Please answer the user's question using the below extracted text.
%s
---

The user has the following question about this document:
"%s"

Rules:
1. First understand the user's question.
2. If the user question is general, answer directly from your knowledge not from the extracted text like "what is the chemical composition as per API 5L".
3. If the user question requires any comparison or analysis, use the extracted text and your knowledge to provide a detailed answer
   for eg. 'For <HeatNumber>, are the chemical properties consistent with API 5L requirements?' then get the extracted text and get the API 5L requirements from your knowledge. And then compare and do the analysis then provide the response to the user.
`

// Escalator answers a question from the PDF carried in a result set instead
// of from the tabular values.
type Escalator struct {
	completer  ai.Completer
	recognizer Recognizer
	workDir    string
	logger     *slog.Logger
}

// Option configures an Escalator.
type Option func(*Escalator) error

// WithRecognizer enables the OCR fallback for scanned documents. Without
// one, scans yield no text and the escalation declines.
func WithRecognizer(recognizer Recognizer) Option {
	return func(e *Escalator) error {
		e.recognizer = recognizer
		return nil
	}
}

// WithWorkDir sets the directory for temporary document files.
// Default is the system temp directory.
func WithWorkDir(dir string) Option {
	return func(e *Escalator) error {
		e.workDir = dir
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Escalator) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEscalator creates a new document escalator.
func NewEscalator(completer ai.Completer, opts ...Option) (*Escalator, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	e := &Escalator{
		completer: completer,
		workDir:   os.TempDir(),
		logger:    slog.Default().With("component", "document-escalator"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Payload returns the document payload from the first row that carries one,
// or false when the result set has no BinaryString column or no usable cell.
func Payload(result *core.ResultSet) (any, bool) {
	if result == nil {
		return nil, false
	}
	col := result.ColumnIndex(payloadColumn)
	if col < 0 {
		return nil, false
	}
	for _, row := range result.Rows {
		if col < len(row) && row[col] != nil {
			return row[col], true
		}
	}
	return nil, false
}

// Escalate answers the question from the document in the result set. The
// boolean reports whether an answer was produced: extraction failures of any
// kind decline the escalation so the caller can fall back to tabular
// formatting. Only a completion failure is returned as an error.
func (e *Escalator) Escalate(ctx context.Context, question *core.Question, result *core.ResultSet) (string, bool, error) {
	payload, ok := Payload(result)
	if !ok {
		return "", false, nil
	}

	data, err := DecodePayload(payload)
	if err != nil {
		e.logger.Warn("document payload decode failed", "err", err)
		return "", false, nil
	}

	text, err := e.extractText(ctx, data, question)
	if err != nil {
		e.logger.Warn("document text extraction failed", "err", err)
		return "", false, nil
	}

	prompt := fmt.Sprintf(answerPromptTemplate, text, question.FullText())
	answer, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		e.logger.Error("document answer failed", "err", err)
		return "", false, err
	}

	return strings.TrimSpace(answer), true, nil
}

// extractText writes the PDF to a uniquely named temp file for inspection,
// extracts its text layer, and falls back to OCR for scans. The temp files
// are removed before returning.
func (e *Escalator) extractText(ctx context.Context, data []byte, question *core.Question) (string, error) {
	pdfFile, err := os.CreateTemp(e.workDir, tempName(question.Text)+"-*.pdf")
	if err != nil {
		return "", err
	}
	pdfPath := pdfFile.Name()
	defer os.Remove(pdfPath)

	if _, err := pdfFile.Write(data); err != nil {
		pdfFile.Close()
		return "", err
	}
	if err := pdfFile.Close(); err != nil {
		return "", err
	}

	text, err := DigitalText(data)
	if err != nil && !errors.Is(err, ErrEmptyDocument) {
		e.logger.Debug("digital extraction failed, trying ocr", "err", err)
	}
	if text == "" && e.recognizer != nil {
		text, err = e.recognizer.RecognizeText(ctx, data)
		if err != nil {
			return "", err
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}

	textPath := strings.TrimSuffix(pdfPath, ".pdf") + ".txt"
	if err := os.WriteFile(textPath, []byte(text), 0600); err == nil {
		defer os.Remove(textPath)
	}

	return text, nil
}

// tempName derives a filesystem-safe name from the first words of the
// question, mirroring how the extracted documents were named historically.
func tempName(question string) string {
	head := question
	if len(head) > 10 {
		head = head[:10]
	}
	head = strings.ReplaceAll(head, " ", "_")
	var b strings.Builder
	b.WriteString("temp_extracted_")
	for _, r := range head {
		if r == '_' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
