// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package astutil

import (
	"fillmore-labs.com/dpguard/internal/report"
)

// InternalError returns an internal error diagnostic for n.
// These errors indicate bugs in the analyzer logic rather than issues in the user's code.
func InternalError(n report.Node, where string, v any) report.Diagnostic {
	return report.New(report.InternalError, n, where, v)
}
