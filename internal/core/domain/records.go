package domain

import "time"

// AppointmentStatus values used by the appointments collection.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

// PrescriptionStatus values used by the prescriptions collection.
const (
	PrescriptionPending = "pending"
	PrescriptionActive  = "active"
	PrescriptionFilled  = "filled"
)

// InvoiceStatus values used by the invoices collection.
const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
)

// Appointment is a typed view of an appointments row. PatientName and
// DoctorName are display enrichments stitched in by the service layer, not
// stored columns.
type Appointment struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patient_id"`
	DoctorID        string    `json:"doctor_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	Reason          string    `json:"reason"`
	Notes           string    `json:"notes,omitempty"`
	Status          string    `json:"status"`
	PatientName     string    `json:"patient_name,omitempty"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	Specialization  string    `json:"specialization,omitempty"`
}

func AppointmentFromRow(r Row) Appointment {
	return Appointment{
		ID:              r.String("id"),
		PatientID:       r.String("patient_id"),
		DoctorID:        r.String("doctor_id"),
		AppointmentDate: r.Time("appointment_date"),
		Reason:          r.String("reason"),
		Notes:           r.String("notes"),
		Status:          r.String("status"),
	}
}

// PrescriptionItem is one medication line on a prescription, referencing an
// inventory row by id.
type PrescriptionItem struct {
	InventoryID string `json:"id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
}

// Prescription is a typed view of a prescriptions row.
type Prescription struct {
	ID           string             `json:"id"`
	PatientID    string             `json:"patient_id"`
	DoctorID     string             `json:"doctor_id"`
	Medications  []PrescriptionItem `json:"medications"`
	Status       string             `json:"status"`
	Notes        string             `json:"notes,omitempty"`
	PrescribedAt time.Time          `json:"prescribed_date"`
	FilledBy     string             `json:"filled_by,omitempty"`
	FilledAt     time.Time          `json:"filled_date,omitempty"`
	PatientName  string             `json:"patient_name,omitempty"`
	DoctorName   string             `json:"doctor_name,omitempty"`
}

func PrescriptionFromRow(r Row) Prescription {
	p := Prescription{
		ID:           r.String("id"),
		PatientID:    r.String("patient_id"),
		DoctorID:     r.String("doctor_id"),
		Status:       r.String("status"),
		Notes:        r.String("notes"),
		PrescribedAt: r.Time("prescribed_date"),
		FilledBy:     r.String("filled_by"),
		FilledAt:     r.Time("filled_date"),
	}
	for _, item := range r.Slice("medications") {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		mr := Row(m)
		p.Medications = append(p.Medications, PrescriptionItem{
			InventoryID: mr.String("id"),
			Name:        mr.String("name"),
			Quantity:    mr.Int("quantity"),
		})
	}
	return p
}

// Invoice is a typed view of an invoices row.
type Invoice struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patient_id"`
	AppointmentID string    `json:"appointment_id,omitempty"`
	InvoiceNumber string    `json:"invoice_number"`
	TotalAmount   float64   `json:"total_amount"`
	Status        string    `json:"status"`
	DueDate       time.Time `json:"due_date"`
	CreatedAt     time.Time `json:"created_at"`
	PatientName   string    `json:"patient_name,omitempty"`
}

func InvoiceFromRow(r Row) Invoice {
	return Invoice{
		ID:            r.String("id"),
		PatientID:     r.String("patient_id"),
		AppointmentID: r.String("appointment_id"),
		InvoiceNumber: r.String("invoice_number"),
		TotalAmount:   r.Float("total_amount"),
		Status:        r.String("status"),
		DueDate:       r.Time("due_date"),
		CreatedAt:     r.Time("created_at"),
	}
}

// Transaction is a typed view of a transactions row (a payment against an
// invoice).
type Transaction struct {
	ID            string    `json:"id"`
	InvoiceID     string    `json:"invoice_id"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	TransactionAt time.Time `json:"transaction_date"`
}

func TransactionFromRow(r Row) Transaction {
	return Transaction{
		ID:            r.String("id"),
		InvoiceID:     r.String("invoice_id"),
		Amount:        r.Float("amount"),
		PaymentMethod: r.String("payment_method"),
		TransactionAt: r.Time("transaction_date"),
	}
}

// InventoryItem is a typed view of an inventory row.
type InventoryItem struct {
	ID        string  `json:"id"`
	ItemName  string  `json:"item_name"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func InventoryItemFromRow(r Row) InventoryItem {
	return InventoryItem{
		ID:        r.String("id"),
		ItemName:  r.String("item_name"),
		Category:  r.String("category"),
		Quantity:  r.Int("quantity"),
		UnitPrice: r.Float("unit_price"),
	}
}

// ScheduleEntry is a typed view of a doctor_schedules row.
type ScheduleEntry struct {
	ID           string    `json:"id"`
	DoctorID     string    `json:"doctor_id"`
	ScheduleDate time.Time `json:"schedule_date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	IsAvailable  bool      `json:"is_available"`
}

func ScheduleEntryFromRow(r Row) ScheduleEntry {
	return ScheduleEntry{
		ID:           r.String("id"),
		DoctorID:     r.String("doctor_id"),
		ScheduleDate: r.Time("schedule_date"),
		StartTime:    r.String("start_time"),
		EndTime:      r.String("end_time"),
		IsAvailable:  r.Bool("is_available"),
	}
}

// Department is a typed view of a departments row.
type Department struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	HeadDoctorID string `json:"head_doctor_id,omitempty"`
}

func DepartmentFromRow(r Row) Department {
	return Department{
		ID:           r.String("id"),
		Name:         r.String("name"),
		Description:  r.String("description"),
		HeadDoctorID: r.String("head_doctor_id"),
	}
}

// SiteSetting is a typed view of a site_settings row.
type SiteSetting struct {
	Key       string    `json:"setting_key"`
	Value     string    `json:"setting_value"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func SiteSettingFromRow(r Row) SiteSetting {
	return SiteSetting{
		Key:       r.String("setting_key"),
		Value:     r.String("setting_value"),
		UpdatedBy: r.String("updated_by"),
		UpdatedAt: r.Time("updated_at"),
	}
}
