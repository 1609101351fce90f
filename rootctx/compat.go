// Copyright 2018 The Jadep Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rootctx

import (
	"github.com/bazelbuild/rules_go/go/tools/bazel"
)

// RunfilesPath resolves path against the Bazel runfiles tree when running
// under Bazel, and returns path unchanged otherwise. Classpath fixtures
// are resolved through this so binaries and tests work both under Bazel
// and under plain `go`.
func RunfilesPath(path string) string {
	if r, err := bazel.Runfile(path); err == nil {
		return r
	}
	return path
}
