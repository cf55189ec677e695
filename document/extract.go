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
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// DecodePayload turns a BinaryString cell value into PDF bytes. String cells
// are base64 decoded; a string that does not decode is taken as raw bytes,
// matching how the payloads were stored historically. Byte cells pass
// through unchanged.
func DecodePayload(value any) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, fmt.Errorf("binary payload is nil")
	case []byte:
		return v, nil
	case string:
		if decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(v)); err == nil {
			return decoded, nil
		}
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported binary payload type %T", value)
	}
}

// DigitalText extracts the embedded text layer from a PDF, page by page.
// Returns ErrEmptyDocument when the pages parse but carry no text, which is
// the usual case for scanned material test reports.
func DigitalText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page should not discard the rest.
			continue
		}
		pages = append(pages, text)
	}

	text := strings.TrimSpace(strings.Join(pages, "\n"))
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}
