package repoargs

type CreateUser struct {
	ExternalID string
	Username   string
	FirstName  string
	LastName   string
}
