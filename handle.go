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

// Handle is a stable, 1-based index into a Store. The zero Handle means
// "no transition" and is never a valid reference to a node. Handle 1 is
// the root and always exists for the lifetime of a Builder.
type Handle uint32

// NoHandle is the null handle.
const NoHandle Handle = 0

// Root is the handle of the root node.
const Root Handle = 1
