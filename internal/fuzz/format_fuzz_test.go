package fuzztests

import (
	"bytes"
	"testing"

	"surgefmt/internal/format"
	"surgefmt/internal/source"
)

// FuzzFormatIdempotent drives the whole pipeline. Any input may be rejected
// with a diagnostic, but an accepted input must format cleanly a second time
// and the second pass must be a no-op.
func FuzzFormatIdempotent(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.sg", input))

		once, err := format.File(file, format.Defaults())
		if err != nil {
			return // отвергнутый вход — не повод для паники, но и не баг
		}

		fs2 := source.NewFileSet()
		again := fs2.Get(fs2.AddVirtual("fuzz.sg", once))
		twice, err := format.File(again, format.Defaults())
		if err != nil {
			t.Fatalf("formatted output rejected on the second pass: %v\noutput: %q",
				err, truncateForLog(once, 200))
		}
		if !bytes.Equal(once, twice) {
			t.Fatalf("formatting is not idempotent\nfirst:  %q\nsecond: %q",
				truncateForLog(once, 200), truncateForLog(twice, 200))
		}
	})
}
