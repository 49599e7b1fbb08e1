package cache

// hitResult is the outcome of a getOrClaim call. When claimed is true the
// caller is responsible for either setting or deleting the key.
type hitResult[T any] struct {
	data    T
	valid   bool
	claimed bool
}

type Cache[T any] interface {
	getOrClaim(key string) hitResult[T]
	set(key string, data T)
	delete(key string)
	wait()
}
