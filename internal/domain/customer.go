package domain

type CustomerRole string

const (
	RoleCustomer CustomerRole = "CUSTOMER"
	RoleAdmin    CustomerRole = "ADMIN"
)

// Address holds the delivery address collected during profile completion.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
}

type Customer struct {
	ID           int32        `json:"id"`
	FullName     string       `json:"full_name"`
	CPF          string       `json:"cpf"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         CustomerRole `json:"role"`
	Address      Address      `json:"address"`
	// DocumentKey is the storage key of the uploaded identification
	// document. Required before a rental checkout can pass the profile step.
	DocumentKey string `json:"document_key,omitempty"`
	CreatedOn   string `json:"created_on"`
	UpdatedOn   string `json:"updated_on"`
}

// ProfileComplete reports whether every field required to pass the profile
// step is populated. Format rules (CPF digits, email shape) are enforced by
// the customer service; this only checks presence.
func (c *Customer) ProfileComplete() bool {
	return c.FullName != "" &&
		c.CPF != "" &&
		c.Phone != "" &&
		c.Email != "" &&
		c.Address.Street != "" &&
		c.Address.Number != "" &&
		c.Address.Neighborhood != "" &&
		c.Address.City != "" &&
		c.Address.State != "" &&
		c.Address.ZipCode != ""
}
