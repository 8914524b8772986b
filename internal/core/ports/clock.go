package ports

import "time"

// Clock supplies the current time so event timestamps stay testable.
type Clock interface {
	Now() time.Time
}
