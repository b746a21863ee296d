package domain

import "time"

type Customer struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	PasswordHash   string    `json:"passwordHash"`
	AccountNumbers []string  `json:"accountNumbers"`
	Complaints     []string  `json:"complaints"`
	CreatedAt      time.Time `json:"dateCreated"`
}

// LinkAccount adds an account number to the customer. Inserts are
// de-duplicated; linking an already-linked number is a no-op.
func (c *Customer) LinkAccount(accountNumber string) {
	for _, n := range c.AccountNumbers {
		if n == accountNumber {
			return
		}
	}
	c.AccountNumbers = append(c.AccountNumbers, accountNumber)
}

func (c *Customer) AddComplaint(complaint string) {
	c.Complaints = append(c.Complaints, complaint)
}
