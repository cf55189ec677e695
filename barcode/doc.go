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

// Package barcode answers asset questions by barcode lookup.
//
// The lookup service authenticates with a PKCS#12 client certificate and the
// caller's token. The barcode itself is pulled out of the question text by
// pattern, the validation API is queried over mutual TLS, and the raw
// payload is summarized by the model into a readable answer.
package barcode
