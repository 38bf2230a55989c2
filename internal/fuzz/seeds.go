package fuzztests

import "testing"

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

// addCorpusSeeds feeds the harness a spread of well-formed, messy and broken
// Surge sources so minimization starts from realistic shapes.
func addCorpusSeeds(f *testing.F) {
	seeds := []string{
		"",
		"fn main() { return 0; }\n",
		"import core/io;\nimport std/fmt as f;\n\nfn main() {\n  io.print(1);\n}\n",
		"import a/b::Member as M;\nimport c::*;\n",
		"let xs = [1, 2, 3,];\nconst limit: i64 = 1 << 20;\n",
		"pub type Pair = map::Entry<K, [V]>;\n",
		"fn loopy() {\n  while a < b {\n    a += 1;\n    if a == 3 { continue; }\n    break;\n  }\n  for x in 0..10 { use(x); }\n}\n",
		"// header\nfn c() {\n  run(); // tail\n  /* block */ stop();\n}\n",
		"fn messy(  ) {   run (1 ,2 , ) ;; }",
		"fn crlf() {\r\n  run();\r\n}\r\n",
		"\xEF\xBB\xBFfn bom() {}\n",
		"fn deep() { { { { } } } }\n",
		"\"unterminated",
		"fn broken( {",
		"import ;",
	}
	for _, s := range seeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
