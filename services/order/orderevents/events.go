package orderevents

const (
	TopicName       = "order"
	orderPlacedName = TopicName + ".placed"
)

type OrderPlaced struct {
	OrderUID      string
	ShopperUID    string
	PaymentMethod string
	AmountInCents int64
}

func (e OrderPlaced) GetEventTypeName() string {
	return orderPlacedName
}

func (e OrderPlaced) GetAggregateName() string {
	return e.OrderUID
}
