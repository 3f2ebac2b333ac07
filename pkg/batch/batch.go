// Package batch разбивает наборы элементов на пачки, допустимые лимитами
// партнёрских API.
package batch

// Divide режет items на последовательные пачки размером не более size.
// 2500 элементов при size=1000 дают пачки 1000/1000/500.
func Divide[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}

	var batches [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}
