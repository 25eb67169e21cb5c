package domain

// Applicant field names shared by the product forms.
const (
	FieldFullName          = "fullName"
	FieldPhoneNumber       = "phoneNumber"
	FieldEmailAddress      = "emailAddress"
	FieldDateOfBirth       = "dateOfBirth"
	FieldYearOfManufacture = "yearOfManufacture"
	FieldVehicleValue      = "vehicleValue"
	FieldVehicleMake       = "vehicleMake"
	FieldVehicleModel      = "vehicleModel"
)

// ApplicantInfo maps form field names to the raw text entered.
type ApplicantInfo map[string]string

// Clone returns a copy of a.
func (a ApplicantInfo) Clone() ApplicantInfo {
	c := make(ApplicantInfo, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}
