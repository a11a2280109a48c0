package ports

import "time"

// Clock supplies the reference day for date sensitive use cases.
type Clock interface {
	Today() time.Time
}

// IDGenerator produces unique identifiers carrying the given prefix.
type IDGenerator interface {
	Next(prefix string) string
}
