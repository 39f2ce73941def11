package stable_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvmatch/gen"
	"github.com/katalvlaran/lvmatch/stable"
)

// BenchmarkMatch compares the three schedulers on random complete instances.
func BenchmarkMatch(b *testing.B) {
	for _, n := range []int{50, 200, 500} {
		a, r, err := gen.Preferences(n, n, int64(n))
		if err != nil {
			b.Fatal(err)
		}
		for _, st := range stable.Strategies {
			b.Run(fmt.Sprintf("%s/n=%d", st, n), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := stable.Match(a, r, stable.WithStrategy(st)); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
