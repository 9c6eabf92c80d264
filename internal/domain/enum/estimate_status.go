package enum

// EstimateStatus represents the lifecycle status of an estimate
type EstimateStatus string

const (
	EstimateStatusDraft     EstimateStatus = "draft"
	EstimateStatusSent      EstimateStatus = "sent"
	EstimateStatusPaid      EstimateStatus = "paid"
	EstimateStatusCancelled EstimateStatus = "cancelled"
)

func (s EstimateStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is one of the known values
func (s EstimateStatus) IsValid() bool {
	switch s {
	case EstimateStatusDraft, EstimateStatusSent, EstimateStatusPaid, EstimateStatusCancelled:
		return true
	}
	return false
}
