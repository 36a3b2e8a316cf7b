package sse

import "time"

// SectionNotifier is the interface services use to emit section refresh events.
type SectionNotifier interface {
	NotifySectionRefreshed(section string, itemCount int)
}

// HubNotifier implements SectionNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifySectionRefreshed(section string, itemCount int) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&SectionEvent{
		Event:       EventSectionRefreshed,
		Section:     section,
		ItemCount:   itemCount,
		RefreshedAt: time.Now(),
	})
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (n *NopNotifier) NotifySectionRefreshed(section string, itemCount int) {}
