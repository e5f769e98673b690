package repoargs

type RepositoryName string

const (
	UserRepoName        RepositoryName = "user"
	OrderRepoName       RepositoryName = "order"
	TransactionRepoName RepositoryName = "transaction"
)
