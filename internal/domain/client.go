package domain

// Client is a registered traveller. PESEL is the Polish national
// identification number and is unique across clients.
type Client struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	Telephone *string // nil when not supplied
	Pesel     string
}
