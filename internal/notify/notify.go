// Package notify sends a desktop notification when an album conversion
// finishes. Notifications go through D-Bus on Linux and are dropped
// elsewhere.
package notify

import "path/filepath"

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

const appName = "cheetah"

// Notification contains data for a desktop notification.
type Notification struct {
	Title   string  // Summary text (required)
	Body    string  // Body text (optional)
	Icon    string  // Path to image file or icon name (optional)
	Timeout int32   // ms, -1 = server default, 0 = never expire
	Urgency Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends n. It returns nil when notifications are unavailable.
	Notify(n Notification) error
}

// Finished describes the outcome of converting source into outputDir.
// summary is the one-line conversion summary, cover an optional image path.
func Finished(source, outputDir, summary, cover string, err error) Notification {
	n := Notification{
		Title:   "Converted " + filepath.Base(source),
		Body:    summary,
		Icon:    cover,
		Timeout: -1,
		Urgency: UrgencyNormal,
	}
	if err != nil {
		n.Title = "Conversion failed: " + filepath.Base(source)
		n.Body = err.Error()
		n.Urgency = UrgencyCritical
	} else if n.Body == "" {
		n.Body = outputDir
	}
	if n.Icon == "" {
		n.Icon = "audio-x-generic"
	}
	return n
}
