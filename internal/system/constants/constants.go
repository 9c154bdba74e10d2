package constants

const ApiBasePath = "/api/v1"
const TemplatesApiPath = "templates"
const ContactsApiPath = "contacts"
const ImportApiPath = "import"
const ExportApiPath = "export"

// Property data types. Types are advisory metadata for rendering and
// export; attribute values are never validated against them at write time.
const (
	TypeText        = "text"
	TypeNumber      = "number"
	TypeDate        = "date"
	TypeBoolean     = "boolean"
	TypeSelect      = "select"
	TypeMultiSelect = "multiselect"
	TypeReference   = "reference"
)

var AllowedDataTypes = map[string]bool{
	TypeText:        true,
	TypeNumber:      true,
	TypeDate:        true,
	TypeBoolean:     true,
	TypeSelect:      true,
	TypeMultiSelect: true,
	TypeReference:   true,
}

// AllowedImportExtensions is the upload allow-list. Anything else is
// rejected before a parser runs.
var AllowedImportExtensions = map[string]bool{
	"csv":  true,
	"txt":  true,
	"xlsx": true,
	"vcf":  true,
	"msg":  true,
	"oft":  true,
}

// Export format tokens.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

var ExportMimeTypes = map[string]string{
	FormatCSV:  "text/csv",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
}

// Canonical attribute vocabulary produced by the contact-card and
// mail-item parsers. The keys are the human-readable property names the
// bundled templates use.
const (
	FieldSalutation    = "Anrede"
	FieldTitle         = "Titel"
	FieldFirstName     = "Vorname"
	FieldLastName      = "Nachname"
	FieldFullName      = "Name"
	FieldCompany       = "Firma"
	FieldCompanyName   = "Firmenname"
	FieldPosition      = "Position"
	FieldPhoneBusiness = "Telefon (geschäftlich)"
	FieldPhoneHome     = "Telefon (privat)"
	FieldPhoneMobile   = "Mobilnummer"
	FieldFax           = "Faxnummer"
	FieldEmail         = "E-Mail"
	FieldWebsite       = "Website"
	FieldStreet        = "Straße"
	FieldPostalCode    = "Postleitzahl"
	FieldCity          = "Ort"
	FieldCountry       = "Land"
	FieldNotes         = "Anmerkungen"
)

// UploadPreviewRows is how many parsed records the upload response carries
// as a preview for the mapping step.
const UploadPreviewRows = 5
