package geg

// Field is the name of one column of the report, as it is known downstream
// (CSV headers and database columns are derived from it).
type Field string

const (
	FieldEmploymentStatus Field = "situacao_empregado"
	FieldName             Field = "nome"
	FieldTaxID            Field = "cpf"
	FieldRole             Field = "cargo"
	FieldLicenseStatus    Field = "status"
	FieldLicenseScore     Field = "pontuacao"
	FieldLicenseExpiry    Field = "vencimento"
	FieldPhoneUse         Field = "celular"
	FieldEating           Field = "alimento"
	FieldSmoking          Field = "fumando"
	FieldEyeClosure       Field = "oclusao"
	FieldSeatbelt         Field = "cinto"
	FieldSpeeding1        Field = "velo1"
	FieldSpeeding2        Field = "velo2"
	FieldSpeeding3        Field = "velo3"
	FieldLaneSpeeding1    Field = "via1"
	FieldLaneSpeeding2    Field = "via2"
	FieldLaneSpeeding3    Field = "via3"
	FieldGForce           Field = "forcag"
	FieldHarshBraking     Field = "frenagem"
	FieldPowerOn          Field = "power"
	FieldOperationSite    Field = "operacao"
)

// Fields lists every field in report order.
var Fields = []Field{
	FieldEmploymentStatus,
	FieldName,
	FieldTaxID,
	FieldRole,
	FieldLicenseStatus,
	FieldLicenseScore,
	FieldLicenseExpiry,
	FieldPhoneUse,
	FieldEating,
	FieldSmoking,
	FieldEyeClosure,
	FieldSeatbelt,
	FieldSpeeding1,
	FieldSpeeding2,
	FieldSpeeding3,
	FieldLaneSpeeding1,
	FieldLaneSpeeding2,
	FieldLaneSpeeding3,
	FieldGForce,
	FieldHarshBraking,
	FieldPowerOn,
	FieldOperationSite,
}

// IsText reports whether the field holds free text, every other field is numeric.
func (f Field) IsText() bool {
	switch f {
	case FieldEmploymentStatus,
		FieldName,
		FieldTaxID,
		FieldRole,
		FieldLicenseStatus,
		FieldLicenseExpiry,
		FieldOperationSite:
		return true
	}
	return false
}

// Default is the value of a field whose cell is missing or empty.
func (f Field) Default() string {
	if f.IsText() {
		return ""
	}
	return "0"
}

// Valid reports whether `f` is one of the known fields.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// Source tells which extraction path produced a record.
type Source string

const (
	// SourceGrid records come from the structured report grid.
	SourceGrid Source = "grid"
	// SourceScan records come from the pattern scan fallback and carry
	// mostly default values.
	SourceScan Source = "scan"
)

// EmployeeRecord is one driver/employee row of the report. Every value is
// kept as rendered text, numeric fields hold a 2 decimal rendering.
type EmployeeRecord struct {
	EmploymentStatus string
	Name             string
	TaxID            string
	Role             string
	LicenseStatus    string
	LicenseScore     string
	// LicenseExpiry is dd/mm/yyyy as rendered by the portal.
	LicenseExpiry string
	PhoneUse      string
	Eating        string
	Smoking       string
	EyeClosure    string
	Seatbelt      string
	Speeding1     string
	Speeding2     string
	Speeding3     string
	LaneSpeeding1 string
	LaneSpeeding2 string
	LaneSpeeding3 string
	GForce        string
	HarshBraking  string
	PowerOn       string
	OperationSite string

	Source Source
}

func (r *EmployeeRecord) field(f Field) *string {
	switch f {
	case FieldEmploymentStatus:
		return &r.EmploymentStatus
	case FieldName:
		return &r.Name
	case FieldTaxID:
		return &r.TaxID
	case FieldRole:
		return &r.Role
	case FieldLicenseStatus:
		return &r.LicenseStatus
	case FieldLicenseScore:
		return &r.LicenseScore
	case FieldLicenseExpiry:
		return &r.LicenseExpiry
	case FieldPhoneUse:
		return &r.PhoneUse
	case FieldEating:
		return &r.Eating
	case FieldSmoking:
		return &r.Smoking
	case FieldEyeClosure:
		return &r.EyeClosure
	case FieldSeatbelt:
		return &r.Seatbelt
	case FieldSpeeding1:
		return &r.Speeding1
	case FieldSpeeding2:
		return &r.Speeding2
	case FieldSpeeding3:
		return &r.Speeding3
	case FieldLaneSpeeding1:
		return &r.LaneSpeeding1
	case FieldLaneSpeeding2:
		return &r.LaneSpeeding2
	case FieldLaneSpeeding3:
		return &r.LaneSpeeding3
	case FieldGForce:
		return &r.GForce
	case FieldHarshBraking:
		return &r.HarshBraking
	case FieldPowerOn:
		return &r.PowerOn
	case FieldOperationSite:
		return &r.OperationSite
	}
	return nil
}

// Get returns the value of `f`, unknown fields are empty.
func (r EmployeeRecord) Get(f Field) string {
	ptr := r.field(f)
	if ptr == nil {
		return ""
	}
	return *ptr
}

// Set assigns the value of `f`, unknown fields are ignored.
func (r *EmployeeRecord) Set(f Field, value string) {
	ptr := r.field(f)
	if ptr == nil {
		return
	}
	*ptr = value
}

// Credentials is one portal account.
type Credentials struct {
	Email    string
	Password string
}
