package resize

import (
	"testing"
)

func benchResize(b *testing.B, rows, cols int, k Kernel) {
	b.Helper()

	g := ramp(128, 512)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Resize(g, rows, cols, k); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResizeBilinearDown(b *testing.B) { benchResize(b, 64, 256, Bilinear) }
func BenchmarkResizeBilinearUp(b *testing.B)   { benchResize(b, 256, 1024, Bilinear) }
func BenchmarkResizeLanczosDown(b *testing.B)  { benchResize(b, 64, 256, Lanczos) }
func BenchmarkResizeNearestDown(b *testing.B)  { benchResize(b, 64, 256, Nearest) }
