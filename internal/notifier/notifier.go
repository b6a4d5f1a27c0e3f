package notifier

import (
	"github.com/plateseries/matriculas/internal/series"
)

// Notifier defines the interface for posting new-record notifications
type Notifier interface {
	// Notify posts notifications for the given records
	Notify(records []series.Record) error
}
