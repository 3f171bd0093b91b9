package session

// Flash kinds used by the views.
const (
	FlashNotice  = "notice"
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// AddFlash queues a message for the next render.
func (s *Session) AddFlash(kind, text string) {
	s.flashes = append(s.flashes, Flash{Kind: kind, Text: text})
	s.dirty = true
}

// PendingFlashes returns queued messages without consuming them.
func (s *Session) PendingFlashes() []Flash {
	return s.flashes
}

// ConsumeFlashes returns queued messages and clears the queue.
func (s *Session) ConsumeFlashes() []Flash {
	if len(s.flashes) == 0 {
		return nil
	}
	out := s.flashes
	s.flashes = nil
	s.dirty = true
	return out
}
