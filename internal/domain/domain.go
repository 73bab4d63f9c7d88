// Package domain holds the persistent data model. One final schema, no
// migration history: tenants own services, appointments and memberships by
// foreign key; audit and approval records are append-only.
package domain

type Role string

const (
	RoleManager      Role = "manager"
	RoleProfessional Role = "professional"
)

type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending_approval"
	ApprovalActive   ApprovalState = "active"
	ApprovalRejected ApprovalState = "rejected"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentPix  PaymentMethod = "pix"
	PaymentCard PaymentMethod = "card"
)

// DigitalPayment reports whether the method requires a proof of payment.
func DigitalPayment(m PaymentMethod) bool {
	return m == PaymentPix || m == PaymentCard
}

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentRejected  AppointmentStatus = "rejected"
)

type ApprovalAction string

const (
	ApprovalActionApprove ApprovalAction = "approve"
	ApprovalActionReject  ApprovalAction = "reject"
)

type RequestStatus string

const (
	RequestRequested RequestStatus = "requested"
	RequestApproved  RequestStatus = "approved"
	RequestDeclined  RequestStatus = "declined"
)

type MediaType string

const (
	MediaProfile MediaType = "profile"
	MediaReceipt MediaType = "receipt"
)
