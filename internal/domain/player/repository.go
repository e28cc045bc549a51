package player

import "context"

// MaxBatchSize bounds the number of ids a store adapter requests at once.
const MaxBatchSize = 100

// Repository describes player record lookups needed by use cases.
// Missing records are reported through the bool or by absence from the map,
// never as an error.
type Repository interface {
	GetByName(ctx context.Context, name string) (Record, bool, error)
	GetManyByID(ctx context.Context, ids []string) (map[string]Record, error)
}

// ChunkIDs splits ids into batches of at most size, dropping blanks and duplicates.
func ChunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = MaxBatchSize
	}

	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	var chunks [][]string
	for start := 0; start < len(unique); start += size {
		end := start + size
		if end > len(unique) {
			end = len(unique)
		}
		chunks = append(chunks, unique[start:end])
	}
	return chunks
}
