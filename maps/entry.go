package maps

// KeyValuePair is one entry of an Ordered map, as yielded by Ordered.Seq.
//
// Example:
//
//	for i, entry := range ordered.Seq() {
//	    fmt.Printf("Index: %d, Key: %v, Value: %v\n", i, entry.Key, entry.Value)
//	}
type KeyValuePair[K comparable, V any] struct {
	Key   K
	Value V
}
