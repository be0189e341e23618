//  Copyright (c) 2017 Couchbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 		http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package automaton

import "fmt"

// ConflictError reports a collision between an existing accepting cell
// and a newly written one under ConflictErrorPolicy. It is the only
// error a Builder's fluent methods ever produce; anything else wrong
// with a call (a malformed handle) is an invariant violation and panics
// instead, per §7's split between caller-recoverable
// construction conflicts and fatal programming errors.
type ConflictError struct {
	Handle   Handle
	Existing interface{}
	New      interface{}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("automaton: conflicting accept at handle %d: existing %v, new %v", e.Handle, e.Existing, e.New)
}
