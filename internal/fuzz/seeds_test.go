package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// inlineSeeds cover constructs the testdata files don't.
var inlineSeeds = []string{
	"",
	"class A { }",
	"class A { fn m() { f(1, b = 2, (c) = g(3)); } }",
	"class A { fn f(a: int, @option(9) b: int, @option c: int) {} fn m() { f(c = 1, a = 2); } }",
	"class A { fn f(a: int) {} fn m() { f(a = 1, a = 2); } }",
	"class A { fn f(a: int, b: int) {} fn m() { f(a = 1, 2); } }",
	"class A { fn m(a: int..., b: int) {} }",
	"class A { let k: int = 1; fn f(@option(k) a: int) {} }",
	"fn f() {}",
	"class A { fn m() { f(",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := "testdata"
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по testdata, добавляем все *.nm файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".nm" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
