package mock

// Notifier records editor notifications instead of showing them.
type Notifier struct {
	Successes []string
	Errors    []string
}

func (n *Notifier) Success(message string) {
	n.Successes = append(n.Successes, message)
}

func (n *Notifier) Error(message string) {
	n.Errors = append(n.Errors, message)
}
