package entity

type Customer struct {
	Base
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
