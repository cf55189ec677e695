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
	"fmt"
	"log/slog"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// Recognizer extracts text from a scanned PDF. Implementations run OCR; the
// escalation path only calls one when the digital text layer is empty.
type Recognizer interface {
	RecognizeText(ctx context.Context, pdfContent []byte) (string, error)
}

// visionPageWindow is the per-request page limit for inline PDF annotation.
const visionPageWindow = 5

// VisionRecognizer runs OCR through the Cloud Vision document text detector.
type VisionRecognizer struct {
	client *vision.ImageAnnotatorClient
	logger *slog.Logger
}

// NewVisionRecognizer creates a Vision-backed recognizer. credentialsFile
// may be empty, in which case ambient application-default credentials apply.
func NewVisionRecognizer(ctx context.Context, credentialsFile string) (*VisionRecognizer, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}

	return &VisionRecognizer{
		client: client,
		logger: slog.Default().With("component", "vision-recognizer"),
	}, nil
}

// Close releases the underlying client.
func (r *VisionRecognizer) Close() error {
	return r.client.Close()
}

// RecognizeText annotates the PDF in windows of five pages and joins the
// page texts in order. The first request omits the page list, letting the
// service default to the opening window and report the total page count,
// which drives the remaining requests.
func (r *VisionRecognizer) RecognizeText(ctx context.Context, pdfContent []byte) (string, error) {
	var pages []string

	collect := func(resp *visionpb.AnnotateFileResponse) {
		for _, pageResp := range resp.GetResponses() {
			if e := pageResp.GetError(); e != nil {
				r.logger.Warn("page annotation error", "message", e.GetMessage())
				continue
			}
			pages = append(pages, pageResp.GetFullTextAnnotation().GetText())
		}
	}

	resp, err := r.annotate(ctx, pdfContent, nil)
	if err != nil {
		return "", err
	}
	collect(resp)

	totalPages := int(resp.GetTotalPages())
	for first := visionPageWindow + 1; first <= totalPages; first += visionPageWindow {
		window := make([]int32, 0, visionPageWindow)
		for p := first; p < first+visionPageWindow && p <= totalPages; p++ {
			window = append(window, int32(p))
		}

		resp, err := r.annotate(ctx, pdfContent, window)
		if err != nil {
			return "", err
		}
		collect(resp)
	}

	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

func (r *VisionRecognizer) annotate(ctx context.Context, pdfContent []byte, pages []int32) (*visionpb.AnnotateFileResponse, error) {
	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{{
			InputConfig: &visionpb.InputConfig{
				Content:  pdfContent,
				MimeType: "application/pdf",
			},
			Features: []*visionpb.Feature{{
				Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION,
			}},
			Pages: pages,
		}},
	}

	resp, err := r.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision annotate: %w", err)
	}
	if len(resp.GetResponses()) == 0 {
		return nil, fmt.Errorf("vision annotate: empty response")
	}
	return resp.GetResponses()[0], nil
}
