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

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chiefpi/tasty-query/names"
)

func TestWalkTreeVisitsEachNodeOnceInPreOrder(t *testing.T) {
	// if (0) { 1; 2 } else 3
	block := NewBlock(Span{}, []Tree{intLit(1)}, intLit(2))
	tree := NewIf(Span{}, intLit(0), block, intLit(3))

	var visited []Tree
	WalkTree(tree, func(n Tree) { visited = append(visited, n) })

	want := []Tree{tree, tree.Cond, block, block.Stats[0], block.Expr, tree.ElseP}
	if len(visited) != len(want) {
		t.Fatalf("WalkTree visited %d nodes, want %d", len(visited), len(want))
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visit %d = %T, want %T", i, visited[i], want[i])
		}
	}

	seen := make(map[Tree]int)
	WalkTree(tree, func(n Tree) { seen[n]++ })
	for n, count := range seen {
		if count != 1 {
			t.Errorf("node %T visited %d times, want 1", n, count)
		}
	}
}

func TestWalkTreeFoldCombinesChildren(t *testing.T) {
	tree := NewIf(Span{}, intLit(0), intLit(1), intLit(2))
	got := WalkTreeFold(tree,
		func(Tree) interface{} { return 1 },
		func(acc, child interface{}) interface{} { return acc.(int) + child.(int) },
		0)
	if got != 4 {
		t.Errorf("WalkTreeFold node count = %v, want 4", got)
	}
}

func TestWalkTypeTreesFindsNestedTypeTrees(t *testing.T) {
	tpt := NewTypeIdent(Span{}, names.SimpleName{Text: "Int"})
	val := NewValDef(Span{}, names.SimpleName{Text: "x"}, tpt, intLit(1), nil)
	block := NewBlock(Span{}, []Tree{val}, intLit(2))

	var found []Tree
	WalkTypeTrees(block, func(tt Tree) { found = append(found, tt) })
	if diff := cmp.Diff([]Tree{Tree(tpt)}, found, cmp.Comparer(func(a, b Tree) bool { return a == b })); diff != "" {
		t.Errorf("WalkTypeTrees mismatch (-want +got):\n%s", diff)
	}
}
