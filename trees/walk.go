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

package trees

// WalkTree visits t, then recurses depth-first into t.Subtrees() in list
// order, calling op at every node. Visit order is deterministic
// pre-order.
func WalkTree(t Tree, op func(Tree)) {
	op(t)
	for _, c := range t.Subtrees() {
		WalkTree(c, op)
	}
}

// WalkTreeFold visits t and its subtrees the same way WalkTree does, but
// folds the result of op(node) together with its already-folded children
// via combine, starting from op(node) (a leaf yields op(leaf)). def is
// returned in place of a nil result.
func WalkTreeFold(t Tree, op func(Tree) interface{}, combine func(acc, child interface{}) interface{}, def interface{}) interface{} {
	acc := op(t)
	for _, c := range t.Subtrees() {
		child := WalkTreeFold(c, op, combine, def)
		acc = combine(acc, child)
	}
	if acc == nil {
		return def
	}
	return acc
}

// WalkTypeTrees applies op to every type-tree discovered at t or any of
// its (term-level) subtrees.
func WalkTypeTrees(t Tree, op func(Tree)) {
	for _, tt := range t.TypeTrees() {
		op(tt)
	}
	for _, c := range t.Subtrees() {
		WalkTypeTrees(c, op)
	}
}
