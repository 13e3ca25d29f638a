package core

// BatchResult accumulates save outcomes across batches. Failures are
// counted, never fatal: one bad batch must not abort the run.
type BatchResult struct {
	Saved  int
	Failed int
}

func (r BatchResult) Add(other BatchResult) BatchResult {
	return BatchResult{
		Saved:  r.Saved + other.Saved,
		Failed: r.Failed + other.Failed,
	}
}

// SaveInBatches splits items into fixed-size batches and folds the save
// results into one BatchResult. A size of zero or less falls back to 3.
func SaveInBatches[T any](items []T, size int, save func([]T) BatchResult) BatchResult {
	if size <= 0 {
		size = 3
	}

	var result BatchResult
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		result = result.Add(save(items[start:end]))
	}
	return result
}

// chunkStrings splits a string slice into batches of at most size.
func chunkStrings(items []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
