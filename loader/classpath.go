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

package loader

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/chiefpi/tasty-query/classfile"
	"github.com/chiefpi/tasty-query/tastyformat"
)

// PackageData is one package's worth of classpath entries: the package's
// dotted name plus the classfiles and TASTy files found under it.
type PackageData struct {
	Name    string
	Classes []classfile.ClassData
	Tastys  []tastyformat.TastyData
}

// Classpath is an immutable ordered sequence of PackageData. The same
// package name may appear more than once when several classpath entries
// contribute to it; entry order is lookup priority.
type Classpath []PackageData

// WithFilter returns a narrowed classpath retaining only the requested
// fully qualified "package.Class" pairs. Filtering is idempotent:
// filtering an already-filtered classpath by the same fqns is a no-op.
func (cp Classpath) WithFilter(fqns []string) Classpath {
	keep := treeset.NewWithStringComparator()
	for _, fqn := range fqns {
		keep.Add(fqn)
	}
	var out Classpath
	for _, pd := range cp {
		var classes []classfile.ClassData
		for _, c := range pd.Classes {
			if keep.Contains(qualify(pd.Name, c.SimpleName)) {
				classes = append(classes, c)
			}
		}
		var tastys []tastyformat.TastyData
		for _, t := range pd.Tastys {
			if keep.Contains(qualify(pd.Name, t.SimpleName)) {
				tastys = append(tastys, t)
			}
		}
		if len(classes) == 0 && len(tastys) == 0 {
			continue
		}
		out = append(out, PackageData{Name: pd.Name, Classes: classes, Tastys: tastys})
	}
	return out
}

func qualify(pkgName, simpleName string) string {
	if pkgName == "" {
		return simpleName
	}
	return pkgName + "." + simpleName
}
