package domain

// Message is a DNS message limited to the header and question section.
// A Message is built per datagram and discarded once it is sent.
type Message struct {
	Header    Header
	Questions []Question
}

// FirstQuestion returns the first question and true, or a zero Question
// and false when the message carries none.
func (m Message) FirstQuestion() (Question, bool) {
	if len(m.Questions) == 0 {
		return Question{}, false
	}
	return m.Questions[0], true
}
