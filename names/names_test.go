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

package names

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSelectAndString(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"scala", "collection", "scala.collection"},
		{"", "foo", "foo"},
		{"a.b", "c", "a.b.c"},
	}
	for _, tt := range tests {
		got := Select(simpleOrQualified(tt.a), tt.b).String()
		if got != tt.want {
			t.Errorf("Select(%q, %q).String() = %q, want %q", tt.a, tt.b, got, tt.want)
		}
	}
}

// simpleOrQualified builds a package-qualified Name chain from a
// dot-separated path, for use as test input.
func simpleOrQualified(path string) Name {
	if path == "" {
		return EmptyTermName
	}
	var n Name = EmptyTermName
	for _, seg := range splitDots(path) {
		n = NewQualified(QualPackage, n, seg)
	}
	return n
}

func splitDots(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func TestSubnames(t *testing.T) {
	n := simpleOrQualified("a.b.c")
	got := Subnames(n)
	if len(got) != 3 {
		t.Fatalf("Subnames(a.b.c) has %d entries, want 3", len(got))
	}
	want := []string{"a", "a.b", "a.b.c"}
	for i, w := range want {
		if got[i].String() != w {
			t.Errorf("Subnames(a.b.c)[%d] = %q, want %q", i, got[i].String(), w)
		}
	}
}

func TestLast(t *testing.T) {
	tests := []struct {
		n    Name
		want string
	}{
		{SimpleName{Text: "List"}, "List"},
		{simpleOrQualified("a.b.c"), "c"},
		{SimpleName{Text: "List"}.ToTypeName(), "List"},
		{SuffixedName{Tag: ObjectClass, Base: SimpleName{Text: "Foo"}}, "Foo"},
	}
	for _, tt := range tests {
		if got := Last(tt.n); got != tt.want {
			t.Errorf("Last(%v) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestTypeNameRoundTrip(t *testing.T) {
	base := SimpleName{Text: "Int"}
	tn := base.ToTypeName()
	if !tn.IsTypeName() {
		t.Errorf("ToTypeName().IsTypeName() = false, want true")
	}
	if diff := cmp.Diff(Name(base), tn.ToTermName()); diff != "" {
		t.Errorf("ToTypeName().ToTermName() mismatch (-want +got):\n%s", diff)
	}
}

func TestSuffixedNameObjectClass(t *testing.T) {
	n := SuffixedName{Tag: ObjectClass, Base: SimpleName{Text: "Foo"}}
	if n.String() != "Foo$" {
		t.Errorf("SuffixedName(Foo).String() = %q, want Foo$", n.String())
	}
	if !IsObjectClassName(n) {
		t.Errorf("IsObjectClassName(Foo$) = false, want true")
	}
	if IsObjectClassName(SimpleName{Text: "Foo"}) {
		t.Errorf("IsObjectClassName(Foo) = true, want false")
	}
}

func TestEmptyAndWildcard(t *testing.T) {
	if !EmptyTermName.IsEmpty() {
		t.Errorf("EmptyTermName.IsEmpty() = false, want true")
	}
	if (SimpleName{Text: "x"}).IsEmpty() {
		t.Errorf("SimpleName(x).IsEmpty() = true, want false")
	}
	if !IsWildcard(Wildcard) {
		t.Errorf("IsWildcard(Wildcard) = false, want true")
	}
}

func TestSignatureEqual(t *testing.T) {
	s1 := Signature{ParamSigs: []string{"Int", "String"}, ResSig: "Unit"}
	s2 := Signature{ParamSigs: []string{"Int", "String"}, ResSig: "Unit"}
	s3 := Signature{ParamSigs: []string{"Int"}, ResSig: "Unit"}
	if !s1.Equal(s2) {
		t.Errorf("identical signatures compared unequal")
	}
	if s1.Equal(s3) {
		t.Errorf("different signatures compared equal")
	}
}
