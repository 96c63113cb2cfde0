package inventory

// DeliveryStatus is the aggregate delivery status of one sales order.
type DeliveryStatus string

const (
	DeliveryStatusNone               DeliveryStatus = "no_delivery"
	DeliveryStatusPendingShipment    DeliveryStatus = "pending_shipment"
	DeliveryStatusPartiallyDelivered DeliveryStatus = "partially_delivered"
	DeliveryStatusDelivered          DeliveryStatus = "delivered"
	DeliveryStatusUnknown            DeliveryStatus = "unknown"
)

// AggregateDeliveryStatus derives one status from the states of an order's
// pickings. Rules apply in order and the first match wins:
//
//  1. non-empty and every picking done: delivered
//  2. some done and some neither done nor cancelled: partially_delivered
//  3. some waiting, confirmed or assigned: pending_shipment
//  4. no pickings: no_delivery
//  5. anything else (all cancelled, done mixed only with cancel, drafts): unknown
func AggregateDeliveryStatus(states []PickingState) DeliveryStatus {
	if len(states) == 0 {
		return DeliveryStatusNone
	}

	var anyDone, allDone, anyOpen, anyPending = false, true, false, false
	for _, s := range states {
		if s == PickingStateDone {
			anyDone = true
		} else {
			allDone = false
		}
		if !s.IsFinal() {
			anyOpen = true
		}
		if s.IsPending() {
			anyPending = true
		}
	}

	switch {
	case allDone:
		return DeliveryStatusDelivered
	case anyDone && anyOpen:
		return DeliveryStatusPartiallyDelivered
	case anyPending:
		return DeliveryStatusPendingShipment
	default:
		return DeliveryStatusUnknown
	}
}
