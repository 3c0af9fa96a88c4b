package domain

import "fmt"

// Question represents a DNS question section entry.
type Question struct {
	Name  Name
	Type  RRType
	Class RRClass
}

// NewQuestion builds a Question from a dotted presentation name.
func NewQuestion(name string, rrtype RRType, class RRClass) Question {
	return Question{
		Name:  ParseName(name),
		Type:  rrtype,
		Class: class,
	}
}

// String returns the question in zone-file order: name, class, type.
func (q Question) String() string {
	return fmt.Sprintf("%s %s %s", q.Name, q.Class, q.Type)
}
