package changes

// Kind identifies what happened to a title between two runs.
type Kind string

const (
	KindNew     Kind = "new"
	KindExpired Kind = "expired"
)

// Event is a single change between the previous and the current snapshot.
type Event struct {
	Kind     Kind
	Platform string
	Title    string
}

// NewOffer builds a KindNew event.
func NewOffer(platform, title string) Event {
	return Event{Kind: KindNew, Platform: platform, Title: title}
}

// ExpiredOffer builds a KindExpired event.
func ExpiredOffer(platform, title string) Event {
	return Event{Kind: KindExpired, Platform: platform, Title: title}
}
