package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Ledger() LedgerRepository
	Balances() BalanceRepository
	Deposits() DepositRepository
	Accounts() AccountRepository
}
