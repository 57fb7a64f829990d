package model

// FulfillmentStatus mirrors the status strings the vendor API reports.
type FulfillmentStatus string

const (
	FulfillmentStatusPending    FulfillmentStatus = "Pending"
	FulfillmentStatusInProgress FulfillmentStatus = "In Progress"
	FulfillmentStatusCompleted  FulfillmentStatus = "Completed"
	FulfillmentStatusCancelled  FulfillmentStatus = "Cancelled"
)

// LocalStatus maps a vendor status onto the order lifecycle. Unknown vendor
// strings are treated as delivery in progress rather than an error.
func (s FulfillmentStatus) LocalStatus() OrderStatus {
	switch s {
	case FulfillmentStatusPending:
		return OrderStatusSubmitted
	case FulfillmentStatusInProgress:
		return OrderStatusInProgress
	case FulfillmentStatusCompleted:
		return OrderStatusCompleted
	case FulfillmentStatusCancelled:
		return OrderStatusCancelled
	default:
		return OrderStatusInProgress
	}
}

// FulfillmentReport is the vendor's view of a submitted order.
type FulfillmentReport struct {
	OrderNumber    string
	Status         FulfillmentStatus
	VoteQuantity   int
	VotesDelivered int
}
