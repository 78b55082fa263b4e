package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Salespeople() SalespersonRepository
	Products() ProductRepository
	Orders() OrderRepository
	Ledger() LedgerRepository
	Payouts() PayoutRepository
}
