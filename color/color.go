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

// Package color colorizes classpath-survey output sent to a terminal:
// package headings are bold, and root entry kinds are tinted by how much
// backing data they carry (green for class+TASTy, magenta for TASTy
// alone, dark gray for a bare classfile).
package color

const keyEscape = 27

var (
	// Enabled decides whether the colorization functions are no-ops.
	// cmd/tastyquery sets it from its -color flag.
	Enabled = true

	green    = []byte{keyEscape, '[', '3', '2', 'm'}
	magenta  = []byte{keyEscape, '[', '3', '5', 'm'}
	darkGray = []byte{keyEscape, '[', '9', '0', 'm'}

	bold = []byte{keyEscape, '[', '1', 'm'}

	reset = []byte{keyEscape, '[', '0', 'm'}
)

func wrap(s string, codes []byte) string {
	if !Enabled {
		return s
	}
	return string(codes) + s + string(reset)
}

// Bold returns s wrapped in ANSI codes which cause terminals to display
// it bold; used for package headings.
func Bold(s string) string {
	return wrap(s, bold)
}

// Green returns s wrapped in ANSI codes which cause terminals to display
// it green; used for roots backed by both a classfile and a TASTy entry.
func Green(s string) string {
	return wrap(s, green)
}

// Magenta returns s wrapped in ANSI codes which cause terminals to
// display it magenta; used for TASTy-only roots.
func Magenta(s string) string {
	return wrap(s, magenta)
}

// DarkGray returns s wrapped in ANSI codes which cause terminals to
// display it dark gray; used for roots with classfile bytes alone.
func DarkGray(s string) string {
	return wrap(s, darkGray)
}
