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

// The tastyquery command surveys a compiled classpath directory: it
// builds the package inventory, enters top-level roots, and prints each
// root's backing entries (classfile, TASTy, or both). Decoding the
// entries themselves requires wiring a classfile parser and a TASTy
// unpickler; without one, tastyquery reports what a decoder would be
// handed.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"flag"

	"github.com/chiefpi/tasty-query/classfile"
	"github.com/chiefpi/tasty-query/color"
	"github.com/chiefpi/tasty-query/glue"
	"github.com/chiefpi/tasty-query/loader"
	"github.com/chiefpi/tasty-query/rootctx"
	"github.com/chiefpi/tasty-query/symbols"
	"github.com/chiefpi/tasty-query/tastyformat"
	"github.com/chiefpi/tasty-query/vlog"
)

var (
	classpathDir = flag.String("classpath", "", "directory laid out as package/sub/package/Name.class (+ .tasty)")
	filterFqns   = flag.String("filter", "", "comma-delimited fully qualified class names to retain; empty keeps everything")
	vlevel       = flag.Int("vlevel", 0, "enable V-leveled logging at the specified level")
	useColor     = flag.Bool("color", true, "colorize output")
)

func main() {
	flag.Parse()
	vlog.Level = *vlevel
	color.Enabled = *useColor
	if *classpathDir == "" {
		log.Fatalln("Must provide -classpath.")
	}

	cp, err := readClasspath(rootctx.RunfilesPath(*classpathDir))
	if err != nil {
		log.Fatalf("Reading classpath: %v", err)
	}
	if *filterFqns != "" {
		cp = cp.WithFilter(strings.Split(*filterFqns, ","))
	}

	ctx := rootctx.NewContext(symbols.NewPackageRoot())
	l := glue.NewLoader(ctx, cp, noParser{}, noUnpickler)
	if err := l.InitPackages(); err != nil {
		log.Fatalf("Initializing packages: %v", err)
	}

	for _, pd := range cp {
		sym, ok := ctx.FindSymbol(pd.Name)
		if !ok {
			log.Fatalf("Package %q vanished after initialization", pd.Name)
		}
		pkg := sym.(*symbols.PackageClassSymbol)
		if err := l.ScanPackage(pkg); err != nil {
			log.Fatalf("Scanning package %q: %v", pd.Name, err)
		}
		printRoots(l, pd.Name, pkg)
	}
}

func printRoots(l *loader.Loader, pkgName string, pkg *symbols.PackageClassSymbol) {
	roots := l.PendingRoots(pkg)
	if len(roots) == 0 {
		return
	}
	fmt.Println(color.Bold(pkgName))
	for _, r := range roots {
		var kind string
		switch r.Entry.(type) {
		case loader.ClassAndTasty:
			kind = color.Green("class+tasty")
		case loader.TastyOnly:
			kind = color.Magenta("tasty")
		case loader.ClassOnly:
			kind = color.DarkGray("class")
		}
		fmt.Printf("  %s  %s\n", r.Class.Name(), kind)
	}
}

// readClasspath walks dir, mapping each subdirectory to a package and
// collecting its .class and .tasty files.
func readClasspath(dir string) (loader.Classpath, error) {
	byPkg := make(map[string]*loader.PackageData)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		ext := filepath.Ext(path)
		if ext != ".class" && ext != ".tasty" {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		pkgName := strings.ReplaceAll(filepath.Dir(rel), string(filepath.Separator), ".")
		if pkgName == "." {
			pkgName = ""
		}
		simple := strings.TrimSuffix(filepath.Base(rel), ext)
		bytes, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		pd, ok := byPkg[pkgName]
		if !ok {
			pd = &loader.PackageData{Name: pkgName}
			byPkg[pkgName] = pd
		}
		if ext == ".class" {
			pd.Classes = append(pd.Classes, classfile.ClassData{SimpleName: simple, DebugPath: path, Bytes: bytes})
		} else {
			pd.Tastys = append(pd.Tastys, tastyformat.TastyData{SimpleName: simple, DebugPath: path, Bytes: bytes})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	pkgNames := make([]string, 0, len(byPkg))
	for name := range byPkg {
		pkgNames = append(pkgNames, name)
	}
	sort.Strings(pkgNames)
	cp := make(loader.Classpath, 0, len(byPkg))
	for _, name := range pkgNames {
		cp = append(cp, *byPkg[name])
	}
	return cp, nil
}

// noParser classifies every classfile as Other: the survey does not
// decode, it only inventories.
type noParser struct{}

func (noParser) ReadKind(classfile.ClassData) (classfile.Kind, error) {
	return classfile.Other{}, nil
}

func (noParser) LoadScala2Class(*rootctx.ClassContext, classfile.Structure, int) error {
	return fmt.Errorf("no scala-2 decoder wired")
}

func (noParser) LoadJavaClass(*rootctx.ClassContext, classfile.Structure, string) error {
	return fmt.Errorf("no java decoder wired")
}

func noUnpickler([]byte) (tastyformat.Unpickler, error) {
	return nil, fmt.Errorf("no tasty decoder wired")
}
