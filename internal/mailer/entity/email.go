package entity

// Receipt identifies a message accepted by the delivery backend.
type Receipt struct {
	MessageID string
}
