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

package barcode

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/quadrantai/woqa/ai"
)

const summaryPromptTemplate = `
You are an expert assistant for barcode lookup and validation.
Here is the data returned from the barcode API:
%s
Summarize the result for the user in a clear, concise way. If there is an error, explain it simply.
User Question:
%s

Answer:
`

// noBarcodeAnswer is returned when no barcode is found in the question.
const noBarcodeAnswer = "Could not find a barcode value in your question."

var barcodePattern = regexp.MustCompile(`(?i)barcode\s*[:=]?\s*([A-Za-z0-9\-]+)`)

// Lookuper is the API surface the service needs; the mutual-TLS Client
// implements it.
type Lookuper interface {
	Lookup(ctx context.Context, barcodeValue, token string) (string, error)
}

// Service answers barcode questions: extract, look up, summarize.
type Service struct {
	client    Lookuper
	completer ai.Completer
	logger    *slog.Logger
}

// NewService creates a barcode answer service.
func NewService(client Lookuper, completer ai.Completer) (*Service, error) {
	if client == nil {
		return nil, ErrClientRequired
	}
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	return &Service{
		client:    client,
		completer: completer,
		logger:    slog.Default().With("component", "barcode-service"),
	}, nil
}

// ExtractBarcode pulls the barcode value out of a question, or "" when the
// question does not name one.
func ExtractBarcode(question string) string {
	match := barcodePattern.FindStringSubmatch(question)
	if match == nil {
		return ""
	}
	return match[1]
}

// Answer resolves a barcode question end to end. A question without a
// barcode gets a fixed explanation rather than an error; API and model
// failures are returned to the caller.
func (s *Service) Answer(ctx context.Context, question, token string) (string, error) {
	barcodeValue := ExtractBarcode(question)
	if barcodeValue == "" {
		return noBarcodeAnswer, nil
	}

	payload, err := s.client.Lookup(ctx, barcodeValue, token)
	if err != nil {
		s.logger.Error("barcode lookup failed", "barcode", barcodeValue, "err", err)
		return "", err
	}

	prompt := fmt.Sprintf(summaryPromptTemplate, payload, question)
	response, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("barcode summary failed", "err", err)
		return "", err
	}
	return strings.TrimSpace(response), nil
}
