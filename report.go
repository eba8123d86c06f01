// Copyright 2024 The Cockroach Authors
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

package swiss

import "fmt"

// debug mirrors the teacher's own ambient-logging pattern
// (cockroachdb/swiss's `const debug = false`): a compile-time-constant
// trace switch rather than a structured logging dependency, since the
// teacher itself never reaches for one for this exact concern.
const debug = false

// Reporter is the assertion/log sink spec.md §6 treats as an external
// collaborator: the core only declares which conditions are worth
// reporting, never how. DuplicateInsert is reported here only in debug
// mode (spec.md §7: "absorbed locally"). The Reporter is also called
// before New panics on an unsupported key type, before any use of a
// closed Table panics, and when Resize drops entries (Resize still
// returns nil then). The *Error values returned by At, Reserve, and
// Resize are not passed to the Reporter.
type Reporter interface {
	Report(kind ErrorKind, msg string, args ...interface{})
}

// defaultReporter writes to standard output via fmt.Printf, the same
// mechanism the teacher's own debug trace lines use.
type defaultReporter struct{}

func (defaultReporter) Report(kind ErrorKind, msg string, args ...interface{}) {
	if kind == DuplicateInsert && !debug {
		return
	}
	fmt.Printf("swiss: %s: "+msg+"\n", append([]interface{}{kind}, args...)...)
}
