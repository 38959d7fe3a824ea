package domain

// Names of the remote collections this system consumes. The store itself is
// external; these constants are the single source of truth for its layout.
const (
	CollectionAdminUsers      = "admin_users"
	CollectionDoctors         = "doctors"
	CollectionPatients        = "patients"
	CollectionPharmacists     = "pharmacists"
	CollectionAppointments    = "appointments"
	CollectionPrescriptions   = "prescriptions"
	CollectionInvoices        = "invoices"
	CollectionTransactions    = "transactions"
	CollectionInventory       = "inventory"
	CollectionDoctorSchedules = "doctor_schedules"
	CollectionDepartments     = "departments"
	CollectionSiteSettings    = "site_settings"
)

// ownerColumns maps each owner-scoped collection to the column binding a row
// to a non-admin identity of the given role. A collection absent from this
// map (or a role absent from its inner map) is not owner-scoped for that role.
var ownerColumns = map[string]map[Role]string{
	CollectionAppointments: {
		RoleDoctor:  "doctor_id",
		RolePatient: "patient_id",
	},
	CollectionPrescriptions: {
		RoleDoctor:     "doctor_id",
		RolePatient:    "patient_id",
		RolePharmacist: "filled_by",
	},
	CollectionInvoices: {
		RolePatient: "patient_id",
	},
	CollectionDoctorSchedules: {
		RoleDoctor: "doctor_id",
	},
}

// OwnerColumn returns the column binding rows of collection to identities of
// role, and whether the collection is owner-scoped for that role at all.
// Admin never has an owner column: admin queries are unrestricted.
func OwnerColumn(collection string, role Role) (string, bool) {
	if role == RoleAdmin {
		return "", false
	}
	col, ok := ownerColumns[collection][role]
	return col, ok
}
