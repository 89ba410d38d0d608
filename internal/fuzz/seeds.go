package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// maxInput bounds both seeds and fuzzer-generated inputs.
const maxInput = 64 << 10

// languageSeeds cover every reader production at least once.
var languageSeeds = []string{
	"",
	"(def x 1)",
	"(defn inc [x] (+ x 1))",
	"(defmacro unless [c & body] (if c nil body))",
	"(let [a 1 b a] (* a b))",
	"(fn [x] (lambda [y] (x y)))",
	"#(+ %1 %2 %&)",
	"(if true 1 2) (if false 1)",
	"'(a b c) (quote x)",
	"[1 2.5 -3 0x1F 0b101 7N 8L] {:a 1 ::b 2} #{1 2}",
	`"str\n" \a \newline é #"re\d+"`,
	"^{:tag String} x",
	"(ns/name other/fn/x)",
	"; comment only\n",
	"(def s (let [s 1] s)) s",
	"`(a ~b ~@c) @atom",
}

// hangSeeds are shapes that once stress recovery and deep nesting.
var hangSeeds = []string{
	"((((((((((((((((((((",
	"#(#(#(% %1) %2) %&)",
	"(let [a (let [b (let [c 1] c)] b)] a",
	"'''''''''x",
	"^^^^^x",
	"(def",
}

// clip copies at most maxInput bytes of b; the fuzzer reuses its buffers.
func clip(b []byte) []byte {
	return append([]byte(nil), b[:min(len(b), maxInput)]...)
}

func addCorpusSeeds(f *testing.F, extra ...string) {
	for _, s := range append(languageSeeds, extra...) {
		f.Add([]byte(s))
	}
	// все *.risp из testdata репозитория
	root := filepath.Join("..", "..", "testdata")
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".risp" {
			return nil
		}
		// #nosec G304 -- path comes from the testdata walk
		if src, err := os.ReadFile(path); err == nil {
			f.Add(clip(src))
		}
		return nil
	})
}
